package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Laam24/research-paper-extractor/internal/metrics"
	"github.com/Laam24/research-paper-extractor/internal/pdftext"
	"github.com/Laam24/research-paper-extractor/internal/report"
	"github.com/Laam24/research-paper-extractor/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract metrics from already-downloaded PDFs",
	Long: `Extract re-runs text and metric extraction over the PDFs in the papers
directory and writes a fresh report, without any network activity. Useful
after tuning vocabulary or when a survey run was interrupted.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("papers-dir", "", "base directory for downloaded papers (default papers)")
	extractCmd.Flags().String("output", defaultOutputFile, "report file")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	papersDir, _ := cmd.Flags().GetString("papers-dir")
	if papersDir == "" {
		papersDir = viperString("papers_dir", defaultPapersDir)
	}
	output, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()

	rawDir := filepath.Join(papersDir, "raw")
	entries, err := os.ReadDir(rawDir)
	if err != nil {
		return fmt.Errorf("reading papers directory %s: %w", rawDir, err)
	}

	var pdfPaths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			pdfPaths = append(pdfPaths, filepath.Join(rawDir, e.Name()))
		}
	}
	sort.Strings(pdfPaths)
	if len(pdfPaths) == 0 {
		return fmt.Errorf("no PDFs found in %s", rawDir)
	}

	rep, err := report.NewWriter(output, report.Header{
		Query:       fmt.Sprintf("local scan of %s", rawDir),
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	accepted := 0
	for _, path := range pdfPaths {
		text, err := pdftext.ExtractFile(path)
		if err != nil {
			fmt.Fprintf(out, "failed:  %s (unreadable PDF: %v)\n", filepath.Base(path), err)
			continue
		}
		res := metrics.Extract(text)

		rec := types.PaperRecord{
			Title:    titleFromPath(path),
			Source:   types.SourceDirect,
			PDFPath:  path,
			Metrics:  res.Values,
			Datasets: res.Datasets,
			Models:   res.Models,
		}
		if err := rep.WritePaper(rec); err != nil {
			rep.Close(accepted, len(pdfPaths))
			return err
		}
		accepted++
		fmt.Fprintf(out, "extracted: %s (%d metric(s))\n", filepath.Base(path), len(res.Values))
	}

	if err := rep.Close(accepted, len(pdfPaths)); err != nil {
		return err
	}
	fmt.Fprintf(out, "Report written to %s\n", output)
	return nil
}

// titleFromPath recovers a readable title from the stored file name,
// e.g. "arxiv_3_Vision Transformers.pdf" -> "Vision Transformers".
func titleFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, kind := range []types.SourceKind{types.SourceScholarPDF, types.SourceArxiv, types.SourceDirect} {
		name = strings.TrimPrefix(name, string(kind)+"_")
	}
	if i := strings.Index(name, "_"); i > 0 {
		if _, err := strconv.Atoi(name[:i]); err == nil {
			name = name[i+1:]
		}
	}
	return name
}
