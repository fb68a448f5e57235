package tui

import "github.com/pranshuparmar/whichshell/pkg/model"

// resultMsg carries a finished detection
type resultMsg struct {
	result model.Result
	err    error
}
