package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"taxtool/internal/invoice"
	"taxtool/internal/replacement"
	"taxtool/internal/runner"
	"taxtool/pkg/response"
)

// getStatus reports the upload script state plus file counts.
func (s *Server) getStatus(c *gin.Context) {
	st := s.upload.Status(50)
	c.JSON(http.StatusOK, response.Success(response.Payload{
		"running":    st.Running,
		"pid":        st.PID,
		"start_time": st.StartTime,
		"current":    st.Current,
		"logs":       st.Logs,
		"data_files": countFiles(s.cfg.DataDir, ""),
		"tax_files":  countFiles(s.cfg.TaxFilesDir, invoice.FileExt),
	}))
}

func (s *Server) startUpload(c *gin.Context) {
	pid, err := s.upload.Start(s.cfg.UploadCommand)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, runner.ErrAlreadyRunning) {
			status = http.StatusBadRequest
		}
		c.JSON(status, response.Error(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(response.Payload{"pid": pid}))
}

func (s *Server) stopUpload(c *gin.Context) {
	if err := s.upload.Stop(); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, runner.ErrNotRunning) {
			status = http.StatusBadRequest
		}
		c.JSON(status, response.Error(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(nil))
}

// reset stops both scripts and clears all status and logs.
func (s *Server) reset(c *gin.Context) {
	s.upload.Reset()
	s.fetch.Reset()
	c.JSON(http.StatusOK, response.Success(response.Payload{
		"message": "control panel reset",
	}))
}

func (s *Server) getLogs(c *gin.Context) {
	st := s.upload.Status(0)
	c.JSON(http.StatusOK, response.Success(response.Payload{
		"logs":  st.Logs,
		"count": len(st.Logs),
	}))
}

func (s *Server) clearLogs(c *gin.Context) {
	s.upload.ClearLogs()
	c.JSON(http.StatusOK, response.Success(nil))
}

// clearTaxFiles deletes every invoice spreadsheet in the tax files dir.
func (s *Server) clearTaxFiles(c *gin.Context) {
	deleted, err := deleteFiles(s.cfg.TaxFilesDir, invoice.FileExt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(response.Payload{
		"deleted_count": len(deleted),
		"files":         deleted,
	}))
}

// clearDataFiles deletes every file in the raw data dir.
func (s *Server) clearDataFiles(c *gin.Context) {
	deleted, err := deleteFiles(s.cfg.DataDir, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(response.Payload{
		"deleted_count": len(deleted),
		"files":         deleted,
	}))
}

// fetchRequest mirrors the fetch script's command-line options.
type fetchRequest struct {
	Headless        *bool `json:"headless"`
	NoClickTransfer bool  `json:"no_click_transfer"`
	Wait            *int  `json:"wait"`
}

func (s *Server) startFetch(c *gin.Context) {
	var req fetchRequest
	_ = c.ShouldBindJSON(&req) // an empty body means defaults

	var args []string
	if req.Headless == nil || *req.Headless {
		args = append(args, "--headless")
	}
	if req.NoClickTransfer {
		args = append(args, "--no-click-transfer")
	}
	if req.Wait != nil {
		args = append(args, "--wait", strconv.Itoa(*req.Wait))
	}

	pid, err := s.fetch.Start(s.cfg.FetchCommand, args...)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, runner.ErrAlreadyRunning) {
			status = http.StatusBadRequest
		}
		c.JSON(status, response.Error(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(response.Payload{"pid": pid}))
}

func (s *Server) getFetchStatus(c *gin.Context) {
	st := s.fetch.Status(200)
	c.JSON(http.StatusOK, response.Success(response.Payload{
		"running":    st.Running,
		"pid":        st.PID,
		"start_time": st.StartTime,
		"logs":       st.Logs,
		"exit_code":  st.ExitCode,
	}))
}

// beverageReplace triggers one replacement run and surfaces its report.
func (s *Server) beverageReplace(c *gin.Context) {
	report, err := s.orch.Run()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, replacement.ErrQuotaExceeded) || errors.Is(err, replacement.ErrNotEnoughCandidates) {
			status = http.StatusBadRequest
		}
		c.JSON(status, response.Error(err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(response.Payload{
		"replaced":  report.Replaced,
		"log_lines": report.LogLines,
		"log_file":  report.LogFile,
	}))
}

func countFiles(dir, ext string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext != "" && !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		n++
	}
	return n
}

func deleteFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("directory does not exist: " + dir)
		}
		return nil, err
	}
	var deleted []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext != "" && !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return deleted, err
		}
		deleted = append(deleted, e.Name())
	}
	return deleted, nil
}
