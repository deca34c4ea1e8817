package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arcivia/arcivia-explore/pkg/theme"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var themeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Show or change the saved theme",
	Long: `Without an argument theme prints the active theme and its palette.
With a name (light, eclipse, dark) it saves the preference.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		classes, _ := cmd.Flags().GetString("classes")

		ctx := cmd.Context()
		store, closeStore, err := openThemeStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		tc := theme.Load(ctx, store)
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			name, ok := theme.ParseName(args[0])
			if !ok {
				return fmt.Errorf("unknown theme %q (available: %s)", args[0], themeNames())
			}
			if err := tc.Set(ctx, name); err != nil {
				return err
			}
			fmt.Fprintf(out, "Theme set to %s\n", name)
			return nil
		}

		if classes != "" {
			fmt.Fprintln(out, tc.Classes(classes))
			return nil
		}
		return printTheme(out, tc)
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.Flags().String("store", "sqlite", "Preference store: sqlite or redis")
	themeCmd.Flags().String("db", "", "SQLite preference file (default is $HOME/.arcivia-prefs.db)")
	themeCmd.Flags().String("classes", "", "Resolve utility classes against the active theme")
	bindFlag(themeCmd, "theme.store", "store")
	bindFlag(themeCmd, "theme.db", "db")
}

// openThemeStore opens the configured preference store.
func openThemeStore(ctx context.Context) (theme.Store, func(), error) {
	switch viper.GetString("theme.store") {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: viper.GetString("redis.addr")})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return theme.NewRedisStore(rdb), func() { rdb.Close() }, nil
	case "", "sqlite":
		path := viper.GetString("theme.db")
		if path == "" {
			path = defaultThemeDB()
		}
		s, err := theme.OpenSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown theme store %q", viper.GetString("theme.store"))
	}
}

func themeNames() string {
	names := make([]string, 0, 3)
	for _, n := range theme.Names() {
		names = append(names, string(n))
	}
	return strings.Join(names, ", ")
}

func printTheme(w io.Writer, tc *theme.Context) error {
	name := tc.Name()
	p := tc.Palette()
	g := theme.GradientsFor(name)

	fmt.Fprintf(w, "Theme: %s (accent %s)\n\n", name, g.Accent)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, row := range [][2]string{
		{"primary01", p.Primary01}, {"primary02", p.Primary02},
		{"secondary01", p.Secondary01}, {"secondary02", p.Secondary02},
		{"background", p.Background}, {"shadow", p.Shadow},
		{"icons01", p.Icons01}, {"icons02", p.Icons02},
		{"text01", p.Text01}, {"text02", p.Text02},
	} {
		fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}
