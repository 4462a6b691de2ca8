package integration

import (
	"fmt"
	"time"
)

// TestCredentials generates unique test user credentials using a timestamp
func TestCredentials(suffix string) (email, password string) {
	ts := time.Now().UnixNano()
	email = fmt.Sprintf("test-%d-%s@example.com", ts, suffix)
	password = "TestPassword123"
	return
}
