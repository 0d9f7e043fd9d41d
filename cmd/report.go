package cmd

import (
	"context"
	"log"

	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/analysis"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/logger"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/records"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/scoring"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type jobReport struct {
	Job    *records.Job                         `json:"job"`
	Cohort scoring.Cohort                       `json:"cohort"`
	ByBand map[scoring.Band][]map[string]string `json:"by_band"`
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report stored analyses of a job grouped by band",
	Run: func(cmd *cobra.Command, _ []string) {
		report(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("job", "", "job title from the jobs file")
	reportCmd.Flags().String("band", "", "only candidates in this band (high, medium, low)")

	reportCmd.MarkFlagRequired("job")
}

func report(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	jobs, err := records.LoadJobs(config.JobsFile)
	if err != nil {
		logger.Fatal("loading jobs", zap.Error(err))
	}

	title, _ := cmd.Flags().GetString("job")
	job, err := jobs.FindByTitle(title)
	if err != nil {
		logger.Fatal("job with given title not found",
			zap.Any("existed job titles", jobs.Titles()),
			zap.String("job title", title),
		)
	}

	st, err := store.Open(config.Store)
	if err != nil {
		logger.Fatal("opening store", zap.Error(err))
	}
	defer st.Close()

	results, err := st.ListAnalysesByJob(ctx, job.ID)
	if err != nil {
		logger.Fatal("listing analyses", zap.Error(err))
	}

	if band, _ := cmd.Flags().GetString("band"); band != "" {
		b, err := scoring.ParseBand(band)
		if err != nil {
			logger.Fatal("parsing band", zap.Error(err))
		}
		results = analysis.FilterByBand(results, b)
	}

	logger.Info("getting stored analyses", zap.Int("count", len(results)))

	out := jobReport{
		Job:    job,
		Cohort: analysis.Cohort(results),
		ByBand: analysis.ReportByBand(results),
	}

	if err := printJSON(cmd.OutOrStdout(), out); err != nil {
		logger.Fatal("printing report", zap.Error(err))
	}
}
