package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/behaviors"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/config"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/fetch"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/pipeline"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/ui"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagURL      string
	flagSections string

	// runtime
	flagOutput     string
	flagBundle     string
	flagViewport   int
	flagWorkers    int
	flagMultiplier int
	flagShopHost   string
	flagBehaviors  string
	flagDryRun     bool
	flagKeepTmp    bool

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
	flagBypass     bool
)

func init() {
	renderCmd := &cobra.Command{
		Use:   "render [flags] [inputs...]",
		Short: "Render theme sections for a target viewport. Uses the defaults from the selected profile, overwritten by CLI flags",
		RunE:  runRender,
	}

	// selection
	renderCmd.Flags().StringVar(&flagURL, "url", "", "render a live storefront page")
	renderCmd.Flags().StringVar(&flagSections, "sections", "", "select sections by index (e.g. 3, 2-4 or 1,3)")

	// runtime
	renderCmd.Flags().StringVar(&flagOutput, "out", "", "output folder for rendered sections")
	renderCmd.Flags().StringVar(&flagBundle, "bundle", "", "also zip the rendered sections into a theme package")
	renderCmd.Flags().IntVar(&flagViewport, "viewport", 1280, "viewport width in px")
	renderCmd.Flags().IntVar(&flagWorkers, "workers", 4, "parallel section renders")
	renderCmd.Flags().IntVar(&flagMultiplier, "multiplier", 11, "scroller growth target in visible widths")
	renderCmd.Flags().StringVar(&flagShopHost, "shop-host", "", "the storefront's own host; links elsewhere are external")
	renderCmd.Flags().StringVar(&flagBehaviors, "behaviors", "", "behaviors to apply (e.g. \"scroller,accordion\")")
	renderCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "list what would be rendered without writing anything")
	renderCmd.Flags().BoolVar(&flagKeepTmp, "keep-tmp", false, "keep loose rendered files after bundling")

	// headers/auth
	renderCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	renderCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	renderCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	renderCmd.Flags().BoolVar(&flagBypass, "bypass", false, "route requests through the Cloudflare bypass transport")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		Output:       flagOutput,
		ShopHost:     flagShopHost,
		KeepTmp:      flagKeepTmp,
		Cookie:       flagCookie,
		CookieFile:   flagCookieFile,
		UserAgent:    flagUserAgent,
		Bypass:       flagBypass,
	})
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("viewport") {
		cfg.ViewportWidth = flagViewport
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if cmd.Flags().Changed("multiplier") {
		cfg.GrowthMultiplier = flagMultiplier
	}
	if flagBehaviors != "" {
		cfg.Behaviors = splitBehaviors(flagBehaviors)
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}

	if cfg.Output == "" {
		cfg.Output = "."
	}

	fmt.Println("Full config:")
	cfg.Print()
	fmt.Println()

	ctx := context.Background()

	var inputs []pipeline.Input

	if flagURL != "" {
		client, err := fetch.NewClient(fetch.ClientOptions{
			Timeout:     30 * time.Second,
			UserAgent:   fetch.PickUserAgent(cfg.UserAgent),
			Cookie:      cfg.Cookie,
			CookieFile:  cfg.CookieFile,
			Bypass:      cfg.Bypass,
			DebugLogger: logSvc,
		})
		if err != nil {
			return err
		}

		body, err := fetch.Page(ctx, client, flagURL)
		if err != nil {
			return err
		}

		inputs = append(inputs, pipeline.Input{Name: pageName(flagURL), Markup: body})
	}

	if len(args) > 0 {
		fileInputs, err := pipeline.CollectFiles(args)
		if err != nil {
			return err
		}
		inputs = append(inputs, fileInputs...)
	}

	if len(inputs) == 0 {
		return fmt.Errorf("nothing to render: pass section files or --url")
	}

	selected, err := pipeline.SelectSections(inputs, flagSections)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("no sections selected")
	}

	if flagDryRun {
		fmt.Printf("Dry-run: %d sections selected.\n\n", len(selected))
		for i, in := range selected {
			src := in.Path
			if src == "" {
				src = flagURL
			}
			fmt.Printf("%3d) %s  ->  %s\n    %s\n", i+1, in.Name, pipeline.OutputName(in.Name), src)
		}
		return nil
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}
	util.SetupInterruptHandler(cfg.Output)

	r := pipeline.New(cfg.ViewportWidth, behaviors.ForNames(cfg.Behaviors), logSvc)
	r.Multiplier = cfg.GrowthMultiplier
	r.ShopHost = cfg.ShopHost

	pm := ui.NewProgressManager(cfg.Workers)
	handle := pm.Register("Sections")
	handle.SetTotal(len(selected))

	start := time.Now()

	files, err := r.RenderAll(ctx, selected, cfg.Output, cfg.Workers, handle)
	pm.Close()
	if err != nil {
		return err
	}

	if flagBundle != "" {
		if err := util.CreateBundle(files, flagBundle); err != nil {
			return err
		}
		fmt.Printf("Bundle written: %s\n", flagBundle)

		if !cfg.KeepTmp {
			for _, f := range files {
				_ = os.Remove(f)
			}
			util.RemoveIfEmpty(cfg.Output)
		}
	}

	fmt.Println()
	fmt.Println("Render Summary:")
	fmt.Printf("Sections:  %d\n", r.Stats.TotalDocuments.Load())
	fmt.Printf("Scrollers: %d\n", r.Stats.TotalScrollers.Load())
	fmt.Printf("Clones:    %d\n", r.Stats.TotalClones.Load())
	fmt.Printf("Data:      %s\n", util.Human(r.Stats.TotalBytes.Load()))
	fmt.Printf("Time:      %s\n", time.Since(start).Round(time.Second))
	fmt.Println("\nAll done.")

	return nil
}

func pageName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "page.html"
	}

	name := u.Host
	if p := strings.Trim(u.Path, "/"); p != "" {
		name += "_" + p
	}

	return name + ".html"
}

func splitBehaviors(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == ',' || r == ' '
	})

	out := []string{}
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}

	return out
}
