package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/abrezinsky/luckydraw/internal/draw"
	"github.com/abrezinsky/luckydraw/internal/logger"
	"github.com/abrezinsky/luckydraw/internal/services"
)

// Keys produced by splitKeys for multi-byte input
const (
	keyRight = "right"
	keyEnter = "enter"
	keyCtrlC = "ctrl-c"
)

// printKeyboardHelp displays all available keyboard shortcuts
func printKeyboardHelp() {
	fmt.Printf("\n%s%s  Keyboard Shortcuts:%s\n", bold, green, reset)
	fmt.Printf("    %sd%s, %sEnter%s, %sSpace%s, %s→%s - Draw a winner\n", cyan, reset, cyan, reset, cyan, reset, cyan, reset)
	fmt.Printf("    %s1%s-%s9%s    - Select a category\n", cyan, reset, cyan, reset)
	fmt.Printf("    %sc%s      - Show winner counts\n", cyan, reset)
	fmt.Printf("    %so%s      - Open operator page in browser\n", cyan, reset)
	fmt.Printf("    %sh%s      - Toggle HTTP request logging\n", cyan, reset)
	fmt.Printf("    %sl%s      - Cycle log level (debug → info → warn → error)\n", cyan, reset)
	fmt.Printf("    %sq%s      - Quit server\n", cyan, reset)
	fmt.Printf("    %s?%s      - Show this help\n\n", cyan, reset)
}

// splitKeys turns one read from the terminal into key names. Printable
// characters are lowercased; arrow escapes other than right are dropped.
func splitKeys(buf []byte) []string {
	var keys []string
	for i := 0; i < len(buf); i++ {
		switch b := buf[i]; {
		case b == 0x1b:
			if i+2 < len(buf) && buf[i+1] == '[' {
				if buf[i+2] == 'C' {
					keys = append(keys, keyRight)
				}
				i += 2
			}
		case b == '\r' || b == '\n':
			keys = append(keys, keyEnter)
		case b == 0x03:
			keys = append(keys, keyCtrlC)
		default:
			keys = append(keys, strings.ToLower(string(rune(b))))
		}
	}
	return keys
}

// keyHandler runs console shortcuts against the draw service
type keyHandler struct {
	draws       services.DrawServicer
	log         logger.Logger
	operatorURL string
	out         io.Writer
	open        func(url string) error
}

// handle runs the action bound to key and reports whether to quit
func (k *keyHandler) handle(key string) bool {
	ctx := context.Background()
	switch key {
	case "d", " ", keyEnter, keyRight:
		k.draw(ctx)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		k.selectIndex(ctx, int(key[0]-'1'))
	case "c":
		k.printCounts(ctx)
	case "o":
		fmt.Fprintf(k.out, "%sOpening operator page in browser...%s\n", cyan, reset)
		if err := k.open(k.operatorURL); err != nil {
			fmt.Fprintf(k.out, "%sError opening browser: %v%s\n", red, err, reset)
		}
	case "h":
		if k.log.IsHTTPLoggingEnabled() {
			k.log.DisableHTTPLogging()
			fmt.Fprintf(k.out, "%sHTTP logging disabled%s\n", yellow, reset)
		} else {
			k.log.EnableHTTPLogging()
			fmt.Fprintf(k.out, "%sHTTP logging enabled%s\n", green, reset)
		}
	case "l":
		next := logger.NextLevel(k.log.GetLevel())
		k.log.SetLevel(next)
		fmt.Fprintf(k.out, "%sLog level: %s%s%s\n", green, yellow, strings.ToLower(next.String()), reset)
	case "?":
		printKeyboardHelp()
	case "q", keyCtrlC:
		return true
	}
	return false
}

func (k *keyHandler) draw(ctx context.Context) {
	out, err := k.draws.Draw(ctx)
	switch {
	case stderrors.Is(err, draw.ErrCooldown):
		// Held keys repeat; stay quiet until the trigger re-arms.
		return
	case err != nil:
		fmt.Fprintf(k.out, "%s%v%s\n", red, err, reset)
		return
	case out.Skipped:
		fmt.Fprintf(k.out, "%sNo draw for this category%s\n", yellow, reset)
		return
	}
	w := out.Winner
	fmt.Fprintf(k.out, "%s%s★ %s%s %s→ %s (%d left)%s\n",
		bold, yellow, w.FileName, reset, cyan, w.Category, w.Remaining, reset)
}

func (k *keyHandler) selectIndex(ctx context.Context, i int) {
	cats, err := k.draws.Categories(ctx)
	if err != nil {
		fmt.Fprintf(k.out, "%s%v%s\n", red, err, reset)
		return
	}
	if i >= len(cats) {
		return
	}
	if err := k.draws.Select(ctx, cats[i].Name); err != nil {
		fmt.Fprintf(k.out, "%s%v%s\n", red, err, reset)
		return
	}
	fmt.Fprintf(k.out, "%sSelected: %s%s%s\n", green, yellow, cats[i].Name, reset)
}

func (k *keyHandler) printCounts(ctx context.Context) {
	cats, err := k.draws.Categories(ctx)
	if err != nil {
		fmt.Fprintf(k.out, "%s%v%s\n", red, err, reset)
		return
	}
	fmt.Fprintf(k.out, "\n%s%s  Winners:%s\n", bold, green, reset)
	for i, c := range cats {
		marker := " "
		if c.Selected {
			marker = "*"
		}
		if c.Skip {
			fmt.Fprintf(k.out, "  %s %d. %s\n", marker, i+1, c.Name)
			continue
		}
		fmt.Fprintf(k.out, "  %s %d. %-20s %s%d%s\n", marker, i+1, c.Name, cyan, c.Count, reset)
	}
	fmt.Fprintln(k.out)
}
