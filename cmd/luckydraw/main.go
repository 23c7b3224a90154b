package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/abrezinsky/luckydraw/internal/app"
	"github.com/abrezinsky/luckydraw/internal/auth"
	"github.com/abrezinsky/luckydraw/internal/browser"
	"github.com/abrezinsky/luckydraw/internal/config"
	"github.com/abrezinsky/luckydraw/internal/logger"
	"github.com/abrezinsky/luckydraw/web"
)

// ANSI escape codes
const (
	reset  = "\033[0m"
	yellow = "\033[33m"
	red    = "\033[31m"
	green  = "\033[32m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
)

var (
	version = "dev"
)

// showBanner prints the logo, revealing it line by line unless skipAnimation
func showBanner(skipAnimation bool) {
	logo := []string{
		"   _               _          ____                      ",
		"  | |   _   _  ___| | ___   _|  _ \\ _ __ __ ___      __ ",
		"  | |  | | | |/ __| |/ / | | | | | | '__/ _` \\ \\ /\\ / / ",
		"  | |__| |_| | (__|   <| |_| | |_| | | | (_| |\\ V  V /  ",
		"  |_____\\__,_|\\___|_|\\_\\\\__, |____/|_|  \\__,_| \\_/\\_/   ",
		"                        |___/                           ",
	}
	border := strings.Repeat("═", 58)

	fmt.Printf("\n  %s╔%s╗%s\n", cyan, border, reset)
	for _, line := range logo {
		fmt.Printf("  %s║%s%-58s%s║%s\n", cyan, yellow, line, cyan, reset)
		if !skipAnimation {
			time.Sleep(60 * time.Millisecond)
		}
	}
	fmt.Printf("  %s╚%s╝%s\n\n", cyan, border, reset)
}

func usage() {
	fmt.Fprintf(os.Stderr, `LuckyDraw - photo lottery

Usage:
  luckydraw [options]

Options:
  -source dir      Directory holding candidate images (default "photos")
  -winners dir     Root directory of the winners archive (default "winners")
  -categories s    Comma-separated category labels
  -skip name       Category that performs no draw
  -cooldown d      Delay before the trigger re-arms (default 1s)
  -port int        HTTP server port (default 8082)
  -db string       SQLite draw history path (default "luckydraw.db")
  -operatorpw str  Operator password (auto-generated if not set)
  -loglevel str    Log level: debug, info, warn, error (default "info")
  -noanimate       Show the logo without animation
  -nokeyboard      Disable keyboard shortcuts
  -nobrowser       Do not open the operator page on start
  -version         Show version and exit

Settings may also come from a .env file or LUCKYDRAW_* environment
variables; flags take precedence.

`)
	printKeyboardHelp()
}

func main() {
	fs := flag.NewFlagSet("luckydraw", flag.ContinueOnError)
	fs.Usage = usage
	showVersion := fs.Bool("version", false, "Show version and exit")

	cfg, err := config.Load(".env", fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sInvalid configuration: %v%s\n", red, err, reset)
		os.Exit(2)
	}

	if *showVersion {
		fmt.Printf("luckydraw %s\n", version)
		os.Exit(0)
	}

	showBanner(cfg.NoAnimate)

	// Setup operator authentication
	password := cfg.OperatorPW
	if password == "" {
		password = auth.GeneratePassword()
	}
	operatorAuth := auth.New(password)

	appLog := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))

	a, err := app.New(appLog, cfg, web.GetTemplatesFS(), web.GetStaticFS(), operatorAuth)
	if err != nil {
		log.Fatal("Failed to initialize application: ", err)
	}
	defer a.Close()

	addr := fmt.Sprintf(":%d", cfg.Port)
	appLog.Info("Operator password", "password", password)
	appLog.Info("Draw configured",
		"source", cfg.SourceDir,
		"winners", cfg.WinnersRoot,
		"categories", len(cfg.Categories),
		"cooldown", cfg.Cooldown)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Run(addr)
	}()

	// Wait a moment for server to start
	time.Sleep(100 * time.Millisecond)

	operatorURL := a.BaseURL(addr) + "/"
	if !cfg.NoBrowser {
		if err := browser.Open(operatorURL); err != nil {
			appLog.Warn("Could not open browser", "error", err)
		}
	}

	quit := make(chan struct{})
	if !cfg.NoKeyboard {
		printKeyboardHelp()
		keys := &keyHandler{
			draws:       a.Draws(),
			log:         appLog,
			operatorURL: operatorURL,
			out:         os.Stdout,
			open:        browser.Open,
		}
		go func() {
			if listenForKeyboard(keys) {
				close(quit)
			}
		}()
	} else {
		fmt.Printf("\n%sKeyboard shortcuts disabled (use -nokeyboard=false to enable)%s\n\n", yellow, reset)
	}

	select {
	case err := <-serverErr:
		if err != nil {
			log.Fatal(err)
		}
	case <-quit:
		fmt.Printf("%sShutting down server...%s\n", yellow, reset)
	}
}
