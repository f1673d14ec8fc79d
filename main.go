package main

import (
	"context"
	"embed"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
	wruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/avessner/minesweeper-desktop/bindings"
	"github.com/avessner/minesweeper-desktop/internal/config"
)

//go:embed all:frontend/dist
var assets embed.FS

const (
	appConfigDirName = "minesweeper-desktop"
	docsURL          = "https://github.com/avessner/minesweeper-desktop/blob/main/README.md"
	repoURL          = "https://github.com/avessner/minesweeper-desktop"
)

var (
	appCtx   context.Context
	appCtxMu sync.RWMutex
)

// buildWindowsOptions configures Windows-specific application settings
func buildWindowsOptions() *windows.Options {
	return &windows.Options{
		BackdropType: windows.Mica,
		Theme:        windows.SystemDefault,

		CustomTheme: &windows.ThemeSettings{
			DarkModeTitleBar:  windows.RGB(30, 30, 30),
			DarkModeTitleText: windows.RGB(226, 232, 240),
			DarkModeBorder:    windows.RGB(51, 65, 85),

			LightModeTitleBar:  windows.RGB(248, 250, 252),
			LightModeTitleText: windows.RGB(15, 23, 42),
			LightModeBorder:    windows.RGB(226, 232, 240),
		},

		WebviewIsTransparent: false,
		WindowIsTranslucent:  false,

		DisablePinchZoom:     true,
		IsZoomControlEnabled: false,
		ZoomFactor:           1.0,

		WindowClassName: "MinesweeperDesktopWindow",
	}
}

// buildMacOptions configures macOS-specific application settings
func buildMacOptions() *mac.Options {
	iconData, err := assets.ReadFile("frontend/dist/assets/logo.png")
	var aboutIcon []byte
	if err == nil {
		aboutIcon = iconData
	}

	return &mac.Options{
		TitleBar: &mac.TitleBar{
			TitlebarAppearsTransparent: false,
			HideTitle:                  false,
			HideTitleBar:               false,
			FullSizeContent:            false,
			UseToolbar:                 false,
			HideToolbarSeparator:       true,
		},

		WebviewIsTransparent: false,
		WindowIsTranslucent:  false,

		About: &mac.AboutInfo{
			Title:   "Minesweeper",
			Message: "The classic mine-clearing puzzle.\n\nBuilt with Wails.",
			Icon:    aboutIcon,
		},
	}
}

// buildLinuxOptions configures Linux-specific application settings
func buildLinuxOptions() *linux.Options {
	iconData, err := assets.ReadFile("frontend/dist/assets/logo.png")
	var windowIcon []byte
	if err == nil {
		windowIcon = iconData
	}

	return &linux.Options{
		Icon:                windowIcon,
		WindowIsTranslucent: false,
		WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
		ProgramName:         "minesweeper-desktop",
	}
}

func main() {
	log.Printf("Starting Minesweeper (Go %s)...", runtime.Version())

	app := bindings.New()

	startup := func(ctx context.Context) {
		app.Startup(ctx)
		setAppContext(ctx)
	}

	beforeClose := func(ctx context.Context) (prevent bool) {
		app.Shutdown(ctx)
		setAppContext(nil)
		log.Println("Application is closing")
		return false
	}

	if err := wails.Run(&options.App{
		Title:            "Minesweeper",
		Width:            720,
		Height:           860,
		MinWidth:         480,
		MinHeight:        560,
		WindowStartState: options.Normal,
		BackgroundColour: &options.RGBA{R: 30, G: 30, B: 30, A: 255},

		AssetServer: &assetserver.Options{
			Assets: assets,
		},

		OnStartup:     startup,
		OnBeforeClose: beforeClose,
		OnShutdown: func(ctx context.Context) {
			log.Println("Application shutdown complete")
		},

		Menu: buildAppMenu(app),

		Bind: []interface{}{app},

		LogLevel:           logger.INFO,
		LogLevelProduction: logger.ERROR,

		EnableDefaultContextMenu: false,

		ErrorFormatter: func(err error) any {
			if err == nil {
				return nil
			}
			return err.Error()
		},

		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId: "418f2c70-6f1d-4a5e-9a37-minesweeper-desktop",
			OnSecondInstanceLaunch: func(data options.SecondInstanceData) {
				log.Printf("Second instance launch prevented. Args: %v", data.Args)
			},
		},

		DragAndDrop: &options.DragAndDrop{
			EnableFileDrop:     false,
			DisableWebViewDrop: true,
		},

		Windows: buildWindowsOptions(),
		Mac:     buildMacOptions(),
		Linux:   buildLinuxOptions(),
	}); err != nil {
		log.Printf("Error running Wails app: %v", err)
		fmt.Printf("Error: %v\n", err)
		panic(err)
	}

	log.Println("Application exited normally")
}

// appDataDir returns an OS-appropriate writable directory.
func appDataDir() string {
	if d, err := os.UserConfigDir(); err == nil && d != "" {
		return filepath.Join(d, appConfigDirName)
	}
	if h, err := os.UserHomeDir(); err == nil && h != "" {
		return filepath.Join(h, "."+appConfigDirName)
	}
	return "."
}

func buildAppMenu(app *bindings.App) *menu.Menu {
	rootMenu := menu.NewMenu()

	if runtime.GOOS == "darwin" {
		if appMenu := menu.AppMenu(); appMenu != nil {
			rootMenu.Append(appMenu)
		}
	}

	gameMenu := menu.NewMenu()
	gameMenu.AddText("New Game", keys.CmdOrCtrl("n"), func(_ *menu.CallbackData) {
		withAppContext(func(ctx context.Context) {
			app.Restart()
			wruntime.EventsEmit(ctx, "game:changed")
		})
	})
	gameMenu.AddSeparator()
	for _, preset := range config.Presets() {
		name := preset.Name
		gameMenu.AddText(presetLabel(preset), nil, func(_ *menu.CallbackData) {
			withAppContext(func(ctx context.Context) {
				if _, err := app.NewGamePreset(name); err != nil {
					log.Printf("preset %q failed: %v", name, err)
					return
				}
				wruntime.EventsEmit(ctx, "game:changed")
			})
		})
	}
	gameMenu.AddSeparator()
	gameMenu.AddText("Open Data Directory", keys.CmdOrCtrl("o"), func(_ *menu.CallbackData) {
		withAppContext(func(ctx context.Context) {
			openPathInExplorer(ctx, appDataDir())
		})
	})
	gameMenu.AddSeparator()
	gameMenu.AddText("Quit", keys.CmdOrCtrl("q"), func(_ *menu.CallbackData) {
		withAppContext(func(ctx context.Context) {
			wruntime.Quit(ctx)
		})
	})
	rootMenu.Append(menu.SubMenu("Game", gameMenu))

	viewMenu := menu.NewMenu()
	viewMenu.AddText("Reload Frontend", keys.CmdOrCtrl("r"), func(_ *menu.CallbackData) {
		withAppContext(func(ctx context.Context) {
			wruntime.WindowReloadApp(ctx)
		})
	})
	viewMenu.AddText("Toggle Fullscreen", keys.Combo("f", keys.CmdOrCtrlKey, keys.ShiftKey), func(_ *menu.CallbackData) {
		withAppContext(func(ctx context.Context) {
			toggleFullscreen(ctx)
		})
	})
	rootMenu.Append(menu.SubMenu("View", viewMenu))

	helpMenu := menu.NewMenu()
	helpMenu.AddText("How to Play", nil, func(_ *menu.CallbackData) {
		withAppContext(func(ctx context.Context) {
			wruntime.BrowserOpenURL(ctx, docsURL)
		})
	})
	helpMenu.AddText("Project Repository", nil, func(_ *menu.CallbackData) {
		withAppContext(func(ctx context.Context) {
			wruntime.BrowserOpenURL(ctx, repoURL)
		})
	})
	rootMenu.Append(menu.SubMenu("Help", helpMenu))

	return rootMenu
}

func presetLabel(p config.Preset) string {
	return fmt.Sprintf("%s (%dx%d, %d mines)", titleCase(p.Name), p.Rows, p.Cols, p.Mines)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func openPathInExplorer(ctx context.Context, path string) {
	if path == "" {
		return
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		log.Printf("resolve path %s failed: %v", path, err)
		abs = path
	}

	wruntime.BrowserOpenURL(ctx, fileURI(abs))
}

func fileURI(path string) string {
	clean := filepath.ToSlash(path)
	if runtime.GOOS == "windows" && len(clean) > 0 && clean[0] != '/' {
		clean = "/" + clean
	}

	u := url.URL{Scheme: "file", Path: clean}
	return u.String()
}

func toggleFullscreen(ctx context.Context) {
	if wruntime.WindowIsFullscreen(ctx) {
		wruntime.WindowUnfullscreen(ctx)
		return
	}
	wruntime.WindowFullscreen(ctx)
}

func setAppContext(ctx context.Context) {
	appCtxMu.Lock()
	defer appCtxMu.Unlock()
	appCtx = ctx
}

func withAppContext(action func(context.Context)) {
	appCtxMu.RLock()
	ctx := appCtx
	appCtxMu.RUnlock()
	if ctx == nil {
		log.Println("application context not initialised; ignoring menu action")
		return
	}
	action(ctx)
}
