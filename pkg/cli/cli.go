package cli

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"

	"github.com/Fepozopo/patternfill/pkg/maskfill"
)

func usage() {
	fmt.Println("Commands available:")
	fmt.Println("  /  - select and apply a pipeline command")
	fmt.Println("  o  - open an outline image")
	fmt.Println("  p  - open a pattern image")
	fmt.Println("  e  - edit a pattern setting")
	fmt.Println("  l  - load a settings preset")
	fmt.Println("  k  - save the settings as a preset")
	fmt.Println("  r  - render the pattern fill")
	fmt.Println("  w  - watch the preset and re-render on change (Ctrl-C to stop)")
	fmt.Println("  t  - trace the fill mask to SVG")
	fmt.Println("  s  - save the current image")
	fmt.Println("  u  - check for updates")
	fmt.Println("  h  - show this help message")
	fmt.Println("  q  - quit")
}

// show previews img and prints its size. Preview is optional, so its errors are ignored.
func show(img image.Image) {
	if img == nil {
		return
	}
	_ = PreviewImage(img)
	if info, err := GetImageInfoImage(img, "png"); err == nil {
		fmt.Println(info)
	}
}

func printSettings(s maskfill.PatternSettings) {
	for _, name := range maskfill.SettingNames {
		v, _ := s.Field(name)
		fmt.Printf("  %-13s %s\n", name, v)
	}
}

// selectCommand asks fzf for a command, falling back to a numbered list.
func selectCommand(store *MetaStore) (string, error) {
	if name, err := SelectCommandWithFzf(store.Commands); err == nil && name != "" {
		return name, nil
	}
	fmt.Println("Command selection (fallback):")
	for i, c := range store.Commands {
		fmt.Printf("  %d) %s - %s\n", i+1, c.Name, c.Description)
	}
	selection, err := PromptLine("Enter number or command name (leave empty to cancel): ")
	if err != nil {
		return "", err
	}
	if selection == "" {
		return "", nil
	}
	return store.Resolve(selection)
}

// RunCLI runs the interactive session. args are the optional outline and
// pattern paths.
func RunCLI(cfg Config, args []string) {
	store := NewMetaStore(maskfill.Commands)
	s := NewSession(cfg)

	if cfg.PresetPath != "" {
		if err := s.LoadPreset(cfg.PresetPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load preset: %v\n", err)
		}
	}
	if len(args) >= 1 {
		if err := s.OpenOutline(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read outline %s: %v\n", args[0], err)
			os.Exit(1)
		}
		show(s.Outline)
	}
	if len(args) >= 2 {
		if err := s.OpenPattern(args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read pattern %s: %v\n", args[1], err)
			os.Exit(1)
		}
	}

	fmt.Println("Pattern Fill")
	usage()

	for {
		line, err := PromptLine("> ")
		if err != nil {
			fmt.Println()
			return
		}
		if line == "" {
			continue
		}

		switch line[0] {
		case '/':
			if s.Outline == nil {
				fmt.Println("No outline loaded. Press 'o' to open one first, or pass it as the first argument.")
				continue
			}
			name, err := selectCommand(store)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				continue
			}
			if name == "" {
				fmt.Println("selection cancelled")
				continue
			}
			c, ok := store.Lookup(name)
			if !ok {
				fmt.Printf("unknown command: %s\n", name)
				continue
			}
			tooltip, _, _ := store.GetCommandHelp(name)
			fmt.Println("\n" + tooltip + "\n")
			rawArgs := make([]string, len(c.Args))
			for i, p := range c.Args {
				rawArgs[i], _ = PromptLine(fmt.Sprintf("%s (%s): ", p.Name, p.Type))
			}
			normArgs, err := NormalizeArgs(store, name, rawArgs)
			if err != nil {
				fmt.Fprintf(os.Stderr, "input validation error: %v\n", err)
				continue
			}
			out, err := s.Apply(name, normArgs)
			if err != nil {
				fmt.Fprintf(os.Stderr, "apply command error: %v\n", err)
				continue
			}
			fmt.Printf("Applied %s\n", name)
			show(out)

		case 'o':
			path, _ := PromptPath("Outline image path ('/' for fzf, empty to cancel): ")
			if path == "" {
				fmt.Println("open cancelled")
				continue
			}
			if err := s.OpenOutline(path); err != nil {
				fmt.Fprintf(os.Stderr, "failed to read outline %s: %v\n", path, err)
				continue
			}
			fmt.Printf("Opened %s\n", path)
			show(s.Outline)

		case 'p':
			path, _ := PromptPath("Pattern image path ('/' for fzf, empty to cancel): ")
			if path == "" {
				fmt.Println("open cancelled")
				continue
			}
			if err := s.OpenPattern(path); err != nil {
				fmt.Fprintf(os.Stderr, "failed to read pattern %s: %v\n", path, err)
				continue
			}
			fmt.Printf("Opened pattern %s\n", path)
			show(s.Pattern)

		case 'e':
			printSettings(s.Settings)
			name, _ := PromptLine("Setting name: ")
			if name == "" {
				continue
			}
			value, _ := PromptLine(name + " = ")
			if err := s.SetField(name, value); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				continue
			}
			v, _ := s.Settings.Field(name)
			fmt.Printf("%s = %s\n", name, v)

		case 'l':
			path, _ := PromptPath("Preset path ('/' for fzf, empty to cancel): ")
			if path == "" {
				continue
			}
			if err := s.LoadPreset(path); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				continue
			}
			fmt.Printf("Loaded preset %s\n", path)
			printSettings(s.Settings)

		case 'k':
			path, _ := PromptLine("Save preset as: ")
			if path == "" {
				continue
			}
			if err := SavePreset(path, s.Settings); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				continue
			}
			s.PresetPath = path
			fmt.Printf("Saved preset to %s\n", path)

		case 'r':
			out, comp, err := s.Render()
			if err != nil {
				fmt.Fprintf(os.Stderr, "render error: %v\n", err)
				continue
			}
			if comp.Empty() {
				fmt.Println("nothing to fill: no outline content detected")
			} else if doc, err := maskfill.MarshalInstruction(comp.Instruction); err == nil {
				fmt.Println(string(doc))
			}
			show(out)

		case 'w':
			if s.PresetPath == "" {
				fmt.Println("No preset loaded. Press 'l' to load one or 'k' to save the current settings.")
				continue
			}
			fmt.Printf("Watching %s, press Ctrl-C to stop\n", s.PresetPath)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			err := s.Watch(ctx, func(out *image.NRGBA, err error) {
				if err != nil {
					fmt.Fprintf(os.Stderr, "%v\n", err)
					return
				}
				fmt.Println("preset changed, re-rendered")
				show(out)
			})
			stop()
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
			}

		case 't':
			svg, err := s.Trace()
			if err != nil {
				fmt.Fprintf(os.Stderr, "trace error: %v\n", err)
				continue
			}
			path, _ := PromptLine("Save SVG as (empty to print): ")
			if path == "" {
				fmt.Println(svg)
				continue
			}
			if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write svg: %v\n", err)
				continue
			}
			fmt.Printf("Saved to %s\n", path)

		case 's':
			if s.Current == nil {
				fmt.Println("nothing to save")
				continue
			}
			out, _ := PromptLine("Enter output filename: ")
			if out == "" {
				fmt.Println("no filename provided")
				continue
			}
			if err := SaveImage(out, s.Current); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write image: %v\n", err)
				continue
			}
			fmt.Printf("Saved to %s\n", out)

		case 'u':
			if err := CheckForUpdates(); err != nil {
				fmt.Fprintf(os.Stderr, "update check error: %v\n", err)
			}

		case 'h':
			usage()

		case 'q':
			fmt.Println("Exiting...")
			return
		}
	}
}
