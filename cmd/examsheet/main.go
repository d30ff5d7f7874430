package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/examsheet/examsheet/internal/config"
	"github.com/examsheet/examsheet/internal/document"
	"github.com/examsheet/examsheet/internal/logger"
	"github.com/examsheet/examsheet/pkg/api"
)

var (
	inputFile  string
	outputFile string
	modeFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "examsheet",
	Short: "Compose and print test papers",
	Long: `examsheet paginates a test document onto A4 pages and renders a
print-ready PDF: a teacher copy with model answers, or a student copy with
pre-filled prompts or proportionally sized ruled answer areas.`,
	SilenceUsage: true,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a document to a printable PDF",
	RunE:  runRender,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a document file without rendering it",
	RunE:  runValidate,
}

func init() {
	renderCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input document JSON file")
	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output PDF file (default: input name with mode suffix)")
	renderCmd.Flags().StringVarP(&modeFlag, "mode", "m", "teacher", "Variant to render: teacher, student or both")
	renderCmd.MarkFlagRequired("input")

	validateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input document JSON file")
	validateCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadDocument(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &doc, nil
}

func generatorFromConfig(cfg *config.Config, inputPath string) *api.Generator {
	options := api.DefaultOptions()
	options.PageWidth = cfg.Geometry.PageWidth
	options.PageHeight = cfg.Geometry.PageHeight
	options.Padding = cfg.Geometry.Padding
	options.HeaderHeight = cfg.Geometry.HeaderHeight
	options.FooterHeight = cfg.Geometry.FooterHeight
	options.LineHeight = cfg.Geometry.LineHeight
	options.SafetyBuffer = cfg.Geometry.SafetyBuffer
	options.FontFamily = cfg.Fonts.Family
	options.FontSize = cfg.Fonts.Size
	options.LineSpacing = cfg.Fonts.LineSpacing
	// resolve content images relative to the document file
	options.ResourcePaths = append(options.ResourcePaths, filepath.Dir(inputPath))
	return api.NewWithOptions(options)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return err
	}
	defer logger.Sync()

	doc, err := loadDocument(inputFile)
	if err != nil {
		return err
	}

	var modes []document.Mode
	if strings.EqualFold(modeFlag, "both") {
		modes = []document.Mode{document.ModeTeacher, document.ModeStudent}
	} else {
		mode, err := document.ParseMode(modeFlag)
		if err != nil {
			return err
		}
		modes = []document.Mode{mode}
	}

	generator := generatorFromConfig(cfg, inputFile)
	log := logger.Get()

	for _, mode := range modes {
		output := outputFile
		if output == "" || len(modes) > 1 {
			ext := filepath.Ext(inputFile)
			output = fmt.Sprintf("%s.%s.pdf", strings.TrimSuffix(inputFile, ext), mode)
		}

		result, err := generator.RenderToFile(doc, mode, output)
		if err != nil {
			return err
		}

		log.Info("rendered paper",
			zap.String("mode", string(mode)),
			zap.String("output", output),
			zap.Int("pages", len(result.Pages)))

		if len(result.OverflowQuestionIDs) > 0 {
			log.Warn("some questions are taller than a page and overflow",
				zap.Strings("question_ids", result.OverflowQuestionIDs))
		}
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(inputFile)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	fmt.Printf("%s: %d questions, %d sections, %g points total\n",
		doc.Title, len(doc.Questions), len(doc.Sections()), doc.TotalPoints())
	return nil
}
