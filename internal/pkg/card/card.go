package card

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	ErrMissingDetails = errors.New("please fill in all card details")
	ErrInvalidNumber  = errors.New("invalid card number")
	ErrInvalidExpiry  = errors.New("invalid or expired card expiry date (MM/YY)")
	ErrInvalidCVV     = errors.New("invalid CVV")
)

var (
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

// Details 支付卡信息
type Details struct {
	Name   string `json:"card_name"`
	Number string `json:"card_number"`
	Expiry string `json:"expiry_date"`
	CVV    string `json:"cvv"`
}

// IsCardMethod 支付方式是否为卡支付
func IsCardMethod(method string) bool {
	return strings.Contains(strings.ToLower(method), "card")
}

// ValidateCardNumber 去除空白后须为 13-19 位数字（不做 Luhn 校验）
func ValidateCardNumber(raw string) bool {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateExpiryDate 校验 MM/YY 格式且未过期
func ValidateExpiryDate(raw string) bool {
	return ValidateExpiryDateAt(raw, time.Now())
}

// ValidateExpiryDateAt 以 now 为当前时间校验有效期，年份按两位数比较
func ValidateExpiryDateAt(raw string, now time.Time) bool {
	m := expiryPattern.FindStringSubmatch(raw)
	if m == nil {
		return false
	}

	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	currentYear := now.Year() % 100
	currentMonth := int(now.Month())

	if year < currentYear {
		return false
	}
	if year == currentYear && month < currentMonth {
		return false
	}
	return true
}

// ValidateCVV 3 或 4 位数字
func ValidateCVV(raw string) bool {
	return cvvPattern.MatchString(raw)
}

// Validate 依次校验卡信息，返回第一个失败项
func Validate(d Details, now time.Time) error {
	if d.Number == "" || d.Expiry == "" || d.CVV == "" {
		return ErrMissingDetails
	}
	if !ValidateCardNumber(d.Number) {
		return ErrInvalidNumber
	}
	if !ValidateExpiryDateAt(d.Expiry, now) {
		return ErrInvalidExpiry
	}
	if !ValidateCVV(d.CVV) {
		return ErrInvalidCVV
	}
	return nil
}
