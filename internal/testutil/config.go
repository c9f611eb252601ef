package testutil

import "github.com/qs3c/agedcare_server/config"

// TestConfig 带完整套餐目录的测试配置
func TestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret-key",
			ExpireHours: 24,
		},
		Wallet:         config.WalletConfig{DefaultBalance: 100},
		CaregiverPrice: 15,
		Plans: []config.PlanConfig{
			{Tier: 0, ID: "trial", Title: "Free Trial", Price: 0, Period: "15 days", Trial: true,
				Features: []string{"Basic care matching"}, ColorScheme: "gray"},
			{Tier: 1, ID: "monthly", Title: "Monthly", Price: 29.99, Period: "month",
				Features: []string{"Care matching", "Wallet"}, ColorScheme: "blue"},
			{Tier: 2, ID: "annual", Title: "Annual", Price: 299, Period: "year", OriginalPrice: 359.88,
				Savings: "Save 17%", Popular: true, ColorScheme: "green"},
			{Tier: 3, ID: "triennial", Title: "3 Years", Price: 799, Period: "3 years", OriginalPrice: 1079.64,
				Savings: "Save 26%", ColorScheme: "purple"},
		},
	}
}
