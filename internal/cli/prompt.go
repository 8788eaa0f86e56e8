package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/solprobe/internal/config"
	"github.com/rileyhilliard/solprobe/internal/errors"
)

// huhPrompter asks on the terminal with huh forms.
type huhPrompter struct{}

func (huhPrompter) URL(def string) (string, error) {
	var raw string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("RPC URL").
				Description("Leave empty to use " + def).
				Placeholder(def).
				Value(&raw).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if err := config.ValidateURL(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("enter an http:// or https:// URL")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Pass --url, or use --no-prompt to take the URL from config")
	}
	return urlOrDefault(raw, def), nil
}

func (huhPrompter) Interval(def uint) (time.Duration, error) {
	var raw string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Update interval (seconds)").
				Description(fmt.Sprintf("Leave empty to use %d", def)).
				Placeholder(strconv.FormatUint(uint64(def), 10)).
				Value(&raw),
		),
	)

	if err := form.Run(); err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Pass --interval, or use --no-prompt to take it from config")
	}
	return intervalOrDefault(raw, def), nil
}

func urlOrDefault(raw, def string) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}
	return def
}

// intervalOrDefault parses whole seconds. Anything unparsable or zero
// falls back to def.
func intervalOrDefault(raw string, def uint) time.Duration {
	secs, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || secs == 0 {
		return time.Duration(def) * time.Second
	}
	return time.Duration(secs) * time.Second
}
