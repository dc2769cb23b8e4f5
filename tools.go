//go:build tools

package main

import (
	_ "github.com/swaggo/swag/v2/cmd/swag"
)
