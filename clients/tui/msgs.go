package tui

import "github.com/schemenav/schemenav/internal/api"

// exchangeResultMsg delivers the outcome of the in-flight exchange back
// to the update loop.
type exchangeResultMsg struct {
	resp api.ExchangeResponse
	err  error
}
