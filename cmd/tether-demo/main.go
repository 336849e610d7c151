// Command tether-demo opens a window on the bundled resource tree (or a
// directory of your own) and logs what the page sends back.
package main

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"

	"github.com/crgimenes/tether"
	"github.com/crgimenes/tether/internal/app"
	"github.com/crgimenes/tether/internal/config"
	"github.com/crgimenes/tether/internal/logging"
	"github.com/crgimenes/tether/internal/resources"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Build information set via ldflags
var (
	version = "dev"
	commit  = "none"
)

var fallback = template.Must(template.New("fallback").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
	<h1>{{.Title}}</h1>
	<p>No index.html in {{.Dir}}.</p>
	<button onclick="window.tether('close')">Close</button>
</body>
</html>`))

func newRootCmd(run func(cfg *config.Config) error) *cobra.Command {
	v := config.New()
	var configFile string

	cmd := &cobra.Command{
		Use:          "tether-demo",
		Short:        "Open a native web view on a resource tree",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if configFile != "" {
				v.SetConfigFile(configFile)
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (default ./tether.yaml)")
	flags.String("title", "", "window title")
	flags.Uint("width", 0, "initial window width")
	flags.Uint("height", 0, "initial window height")
	flags.Uint("min-width", 0, "minimum window width")
	flags.Uint("min-height", 0, "minimum window height")
	flags.Bool("borderless", false, "hide the window decorations")
	flags.Bool("debug", false, "enable the developer tools")
	flags.String("host", "", "host name the resources are served under")
	flags.String("resources", "", "serve this directory instead of the bundled pages")
	flags.Bool("watch", false, "reload the page when resources change")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.String("log-format", "", "console or json")

	for key, name := range map[string]string{
		"window.title":      "title",
		"window.width":      "width",
		"window.height":     "height",
		"window.min_width":  "min-width",
		"window.min_height": "min-height",
		"window.borderless": "borderless",
		"window.debug":      "debug",
		"host":              "host",
		"resources":         "resources",
		"watch":             "watch",
		"log.level":         "log-level",
		"log.format":        "log-format",
	} {
		bindFlag(v, key, cmd, name)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(c *cobra.Command, _ []string) {
			c.Printf("tether-demo %s (%s)\n", version, commit)
		},
	})
	return cmd
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
		panic(err)
	}
}

func run(cfg *config.Config) error {
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	tether.SetLogger(log.Named("tether"))

	dir := "bundled resources"
	fsys := resources.Embedded()
	if cfg.Resources != "" {
		dir = cfg.Resources
		fsys = os.DirFS(cfg.Resources)
	}
	res := resources.New(cfg.Host, fsys, log)
	h := app.NewHandler(log, res, tether.Exit)

	return tether.Start(func() {
		w := tether.NewWindow(cfg.WindowOptions(h))
		w.SetTitle(cfg.Window.Title)

		if _, err := fs.Stat(fsys, "index.html"); err != nil {
			log.Warn("no index page", zap.String("dir", dir), zap.Error(err))
			data := struct{ Title, Dir string }{cfg.Window.Title, dir}
			if err := tether.LoadTemplate(w, fallback, "fallback", data); err != nil {
				log.Error("render fallback page", zap.Error(err))
			}
		} else {
			w.Navigate(res.URL("index.html"))
		}

		if !cfg.Watch {
			return
		}
		watcher, err := resources.Watch(cfg.Resources, resources.DefaultDebounce, log, func(name string) {
			tether.Dispatch(func() {
				log.Info("reloading", zap.String("changed", name))
				w.Eval("location.reload()")
			})
		})
		if err != nil {
			log.Error("watch resources", zap.String("dir", cfg.Resources), zap.Error(err))
			return
		}
		h.OnClose(watcher.Close)
	})
}

func main() {
	if err := newRootCmd(run).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
