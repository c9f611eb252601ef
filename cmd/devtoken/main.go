package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/qs3c/agedcare_server/config"
	"github.com/qs3c/agedcare_server/internal/pkg/jwt"
)

var (
	email = flag.String("email", "", "Account email to embed in the token")
	hours = flag.Int("hours", 0, "Token lifetime in hours, 0 uses jwt.expire_hours")
)

// 为本地调试签发访问令牌
func main() {
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	expire := *hours
	if expire <= 0 {
		expire = cfg.JWT.ExpireHours
	}

	token, err := jwt.GenerateToken(*email, cfg.JWT.Secret, expire)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
