package cmd

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"taxtool/internal/config"
	"taxtool/internal/logger"
	"taxtool/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web control panel",
	Long: `Start the HTTP control panel used to launch and monitor the upload and
fetch scripts, trigger beverage invoice replacement, and clean working
directories.

Configuration comes from environment variables (see .env):
  TAX_FILES_DIR, DATA_DIR, STATE_FILE, LOG_DIR,
  UPLOAD_COMMAND, FETCH_COMMAND, PORT`,
	Example: `  # Serve on the default port (5001)
  taxtool serve

  # Serve on another port and open the panel in a browser
  taxtool serve --port 8080 --open`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Override the configured port")
	serveCmd.Flags().Bool("open", false, "Open the control panel in a browser after start")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	if open, _ := cmd.Flags().GetBool("open"); open {
		url := fmt.Sprintf("http://localhost:%d", cfg.Port)
		go func() {
			time.Sleep(1200 * time.Millisecond)
			if err := openBrowser(url); err != nil {
				log.Warn().Err(err).Str("url", url).Msg("Could not open browser")
			}
		}()
	}

	log.Info().Int("port", cfg.Port).Msg("Starting control panel")
	return srv.Run()
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
