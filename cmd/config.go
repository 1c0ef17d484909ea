package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/awray/streakcard/internal/config"
	"github.com/awray/streakcard/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change streakcard settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(config.GetPaths().ConfigFile)
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

// configKeys maps dotted key names to getters and setters on Config.
var configKeys = map[string]struct {
	get func(*config.Config) string
	set func(*config.Config, string) error
}{
	"github.username": {
		get: func(c *config.Config) string { return c.GitHub.Username },
		set: func(c *config.Config, v string) error { c.GitHub.Username = v; return nil },
	},
	"github.timezone_offset": {
		get: func(c *config.Config) string { return strconv.Itoa(c.GitHub.TimezoneOffset) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("timezone_offset must be an integer: %q", v)
			}
			if n < -12 || n > 14 {
				return fmt.Errorf("timezone_offset must be between -12 and 14, got %d", n)
			}
			c.GitHub.TimezoneOffset = n
			return nil
		},
	},
	"github.lookback_days": {
		get: func(c *config.Config) string { return strconv.Itoa(c.GitHub.LookbackDays) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return fmt.Errorf("lookback_days must be a positive integer: %q", v)
			}
			c.GitHub.LookbackDays = n
			return nil
		},
	},
	"github.max_pages": {
		get: func(c *config.Config) string { return strconv.Itoa(c.GitHub.MaxPages) },
		set: func(c *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 10 {
				return fmt.Errorf("max_pages must be between 1 and 10: %q", v)
			}
			c.GitHub.MaxPages = n
			return nil
		},
	},
	"github.use_calendar": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.GitHub.UseCalendar) },
		set: func(c *config.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("use_calendar must be true or false: %q", v)
			}
			c.GitHub.UseCalendar = b
			return nil
		},
	},
	"card.output": {
		get: func(c *config.Config) string { return c.Card.Output },
		set: func(c *config.Config, v string) error { c.Card.Output = v; return nil },
	},
	"card.theme": {
		get: func(c *config.Config) string { return c.Card.Theme },
		set: func(c *config.Config, v string) error {
			switch v {
			case "dark", "light", "auto":
				c.Card.Theme = v
				return nil
			}
			return fmt.Errorf("theme must be dark, light, or auto: %q", v)
		},
	},
}

// sorted key order for `config get` with no argument.
var configKeyOrder = []string{
	"github.username",
	"github.timezone_offset",
	"github.lookback_days",
	"github.max_pages",
	"github.use_calendar",
	"card.output",
	"card.theme",
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		entry, ok := configKeys[args[0]]
		if !ok {
			return fmt.Errorf("unknown key %q", args[0])
		}
		fmt.Println(entry.get(cfg))
		return nil
	}

	for _, key := range configKeyOrder {
		ui.Kv(key, configKeys[key].get(cfg))
	}
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	entry, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown key %q", key)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := entry.set(cfg, value); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("%s = %s", key, entry.get(cfg)))
	return nil
}
