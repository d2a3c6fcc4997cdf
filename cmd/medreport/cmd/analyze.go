package cmd

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/corey/medreport/internal/ports"
)

var (
	analyzeText  string
	analyzePicks []string
	analyzeFile  string
	analyzeJSON  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [symptoms...]",
	Short: "Generate and save a report",
	Long: "Analyzes a free-text description, picked symptoms and/or an attached lab report\n" +
		"or image, and saves the report. Picked names must match the taxonomy exactly.",
	Example: "  medreport analyze \"headache since monday\" --pick Fever --pick \"Stiff neck\"\n" +
		"  medreport analyze --file bloodwork.pdf",
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeText, "text", "t", "", "Symptom description (alternative to positional args)")
	f.StringArrayVarP(&analyzePicks, "pick", "p", nil, "Add a symptom by its exact taxonomy name (repeatable)")
	f.StringVarP(&analyzeFile, "file", "f", "", "Attach a lab report (PDF) or image")
	f.BoolVar(&analyzeJSON, "json", false, "Output as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(append([]string{analyzeText}, args...), " "))
	req := ports.AnalysisRequest{Symptoms: text}

	if analyzeFile != "" {
		att, err := readAttachment(analyzeFile, cfg.MaxUploadBytes)
		if err != nil {
			return err
		}
		req.Attachment = att
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Stop()

	r, err := a.Analyze(cmd.Context(), req, analyzePicks)
	if err != nil {
		return err
	}
	if analyzeJSON {
		return printJSON(cmd, r)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatReport(r))
	return nil
}

// readAttachment loads path and infers its MIME type from the extension,
// falling back to content sniffing.
func readAttachment(path string, maxBytes int) (*ports.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > int64(maxBytes) {
		return nil, fmt.Errorf("%w: %s is %d bytes (max %d)", ports.ErrInvalidInput, path, info.Size(), maxBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	if _, ok := ports.AttachmentTypes[mimeType]; !ok {
		mimeType = http.DetectContentType(data)
		if i := strings.IndexByte(mimeType, ';'); i >= 0 {
			mimeType = mimeType[:i]
		}
	}
	return ports.EncodeAttachment(filepath.Base(path), mimeType, data), nil
}
