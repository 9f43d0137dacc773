package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode uint8

const (
	uiOff uiMode = iota
	uiAuto
	uiOn
)

var uiModeNames = map[string]uiMode{"off": uiOff, "auto": uiAuto, "on": uiOn}

func readUIMode(value string) (uiMode, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return uiOff, nil
	}
	if m, ok := uiModeNames[v]; ok {
		return m, nil
	}
	return uiOff, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// useProgressView решает, рисовать ли прогресс. Вид пишет в stderr, поэтому
// auto смотрит на stderr; для одного файла прогресс не нужен.
func useProgressView(mode uiMode, files int) bool {
	if files < 2 {
		return false
	}
	switch mode {
	case uiOn:
		return true
	case uiAuto:
		return !current.quiet && isTerminal(os.Stderr)
	default:
		return false
	}
}
