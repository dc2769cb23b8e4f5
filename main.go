package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/goverify/internal/app"
)

// @title           GoVerify API
// @version         1.0
// @description     GoVerify issues and verifies phone one-time passcodes.
// @termsOfService  https://goverify.dev/terms
// @contact.name    Contact Support
// @contact.url     https://goverify.dev/contact
// @contact.email   support@goverify.dev
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @server          https://localhost:8080
func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
