package notify

import "bookstore/internal/config"

func testSMTPConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:         "smtp.example.com",
		Port:         587,
		Username:     "noreply@example.com",
		Password:     "secret",
		From:         "noreply@example.com",
		StoreAddress: "store@example.com",
	}
}
