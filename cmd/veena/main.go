package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/veena/internal/app"
	"github.com/ayusman/veena/internal/server"
	"github.com/ayusman/veena/internal/store"
	"github.com/ayusman/veena/internal/tray"
	"github.com/ayusman/veena/testdata"
)

func main() {
	fmt.Println("Veena - Interactive String Stage")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".veena")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "veena.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// A fresh installation gets the demo song
	seedLibrary(st)

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// The stage handler is shared: the server routes it, the app
	// publishes frames into it
	stage := server.NewStageHandler()

	application := app.New(app.Config{
		Store:     st,
		PluginDir: filepath.Join(dataDir, "plugins"),
		CameraID:  0,
		Publisher: stage,
	})

	if err := application.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}
	if err := application.LoadSettings(); err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	// Configure and start the server
	cfg := server.Config{
		StaticDir:  webDir,
		Store:      st,
		Camera:     application.Camera(),
		Controller: application,
		Stage:      stage,
	}

	srv := server.New(cfg)

	addr := ":8080"
	go func() {
		fmt.Printf("Starting server on %s\n", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	// The tray owns the main goroutine until the operator quits
	t := tray.New()
	t.SetExperience(application.Experience())
	t.OnToggle(application.SetEnabled)
	t.OnStage(func() {
		openBrowser("http://localhost:8080")
	})
	t.OnQuit(func() {
		application.Stop()
	})
	t.Run()
}

// seedLibrary loads the embedded demo song into an empty library.
func seedLibrary(st *store.Store) {
	songs, err := st.Songs().List()
	if err != nil {
		log.Printf("Failed to list songs: %v", err)
		return
	}
	if len(songs) > 0 {
		return
	}

	song, err := testdata.LoadSong("gymnopedie")
	if err != nil {
		log.Printf("Failed to load demo song: %v", err)
		return
	}
	if err := st.Songs().Create(song); err != nil {
		log.Printf("Failed to seed demo song: %v", err)
		return
	}
	fmt.Printf("Seeded demo song: %s\n", song.Title)
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.veena/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".veena", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
