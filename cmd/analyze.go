package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/analysis"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/courses"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/extract"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/interview"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/logger"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/records"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/resumetext"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/skills"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "resume file (pdf, docx, doc, rtf, odt, txt, md)")
	analyzeCmd.Flags().String("job", "", "job title from the jobs file. Asked interactively when unset.")
	analyzeCmd.Flags().String("skills", "", "comma-separated candidate skills, skips profile extraction")
	analyzeCmd.Flags().Bool("semantic", false, "run semantic skill detection")
	analyzeCmd.Flags().Bool("save", false, "persist the result in the store")
	analyzeCmd.Flags().String("jobs-file", "", "jobs catalogue (yaml or json)")

	analyzeCmd.MarkFlagRequired("resume")

	viper.BindPFlag("matching.semantic", analyzeCmd.Flags().Lookup("semantic"))
	viper.BindPFlag("jobs-file", analyzeCmd.Flags().Lookup("jobs-file"))
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the analysis", zap.String("version", version))

	jobs, err := records.LoadJobs(config.JobsFile)
	if err != nil {
		logger.Fatal("loading jobs", zap.Error(err), zap.String("hint", "set jobs-file in the config or pass --jobs-file"))
	}

	if jobs.Len() == 0 {
		logger.Fatal("no jobs in the jobs file", zap.String("path", config.JobsFile))
	}

	title, _ := cmd.Flags().GetString("job")
	job, err := selectJob(jobs, title)
	if err != nil {
		logger.Fatal("selecting a job", zap.Error(err), zap.Any("existed job titles", jobs.Titles()))
	}

	path, _ := cmd.Flags().GetString("resume")
	text, err := resumetext.Read(path)
	if err != nil {
		logger.Fatal("reading resume", zap.Error(err), zap.String("path", path))
	}

	resume := records.NewResume(text)
	if raw, _ := cmd.Flags().GetString("skills"); raw != "" {
		resume.ExtractedSkills = skills.SplitDisplay(raw)
	}

	save, _ := cmd.Flags().GetBool("save")

	deps, stages, cleanup, err := prepareAnalysis(ctx, config, job, save, logger)
	if err != nil {
		logger.Fatal("preparing the analysis", zap.Error(err))
	}
	defer cleanup()

	// do not bother error since statuses are plain values
	pretty, _ := json.MarshalIndent(analysis.Describe(stages), "", "  ")
	logger.Debug(fmt.Sprintf("running with stages: \n %s", pretty))

	result, err := analysis.Run(ctx, deps, stages, job, resume)
	if err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}

	if err := printJSON(cmd.OutOrStdout(), result); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}

	logger.Info("analysis finished",
		zap.String("band", string(result.Band)),
		zap.Float64("coverage_percent", result.CoveragePercent),
		zap.Int("warnings", len(result.Warnings)),
	)
}

// prepareAnalysis wires the pipeline dependencies and disables the stages
// that the configuration leaves without one.
func prepareAnalysis(ctx context.Context, config *Config, job *records.Job, save bool, logger *zap.Logger) (analysis.Deps, []analysis.Stage, func(), error) {
	stages := analysis.DefaultStages()
	deps := analysis.Deps{
		Logger:  logger,
		Courses: courses.Default(),
	}
	cleanup := func() {}

	svc := newServices(ctx, config, logger)

	if config.AI.Enabled {
		generator, err := svc.completer()
		if err != nil {
			return deps, nil, cleanup, fmt.Errorf("building ai completer: %w", err)
		}
		deps.Extractor = extract.NewExtractor(generator, logger, config.AI.Gemini.MaxLogLength)
		deps.Interviewer = interview.NewInterviewer(generator, config.Interview.Questions, logger)
	} else {
		analysis.DisableByName(stages, analysis.StageQuestions, "ai is disabled")
	}

	if config.Matching.Semantic {
		det, err := svc.detector()
		if err != nil {
			return deps, nil, cleanup, fmt.Errorf("building skill detector: %w", err)
		}
		deps.Detector = det
	} else {
		analysis.DisableByName(stages, analysis.StageDetect, "semantic matching is disabled")
	}

	if !save {
		analysis.DisableByName(stages, analysis.StageSave, "--save is not set")
		return deps, stages, cleanup, nil
	}

	st, err := store.Open(config.Store)
	if err != nil {
		return deps, nil, cleanup, fmt.Errorf("opening store: %w", err)
	}
	cleanup = func() {
		if err := st.Close(); err != nil {
			logger.Warn("closing store", zap.Error(err))
		}
	}

	if err := st.SaveJob(ctx, job); err != nil {
		cleanup()
		return deps, nil, func() {}, err
	}
	deps.Saver = st

	return deps, stages, cleanup, nil
}

// selectJob finds a job by title. Without a title the only job is taken,
// otherwise the user picks one.
func selectJob(jobs *records.Jobs, title string) (*records.Job, error) {
	if title != "" {
		return jobs.FindByTitle(title)
	}

	if jobs.Len() == 1 {
		return jobs.Items[0], nil
	}

	prompt := promptui.Select{
		Label: "Select a job",
		Items: jobs.Titles(),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("job prompt: %w", err)
	}

	return jobs.Items[idx], nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
