package cmd

import (
	"context"
	"log"

	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/interview"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade an answer to an interview question",
	Run: func(cmd *cobra.Command, _ []string) {
		grade(cmd)
	},
}

func init() {
	rootCmd.AddCommand(gradeCmd)

	gradeCmd.Flags().StringP("question", "q", "", "interview question")
	gradeCmd.Flags().StringP("answer", "a", "", "candidate answer")

	gradeCmd.MarkFlagRequired("question")
	gradeCmd.MarkFlagRequired("answer")
}

func grade(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if !config.AI.Enabled {
		logger.Fatal("grading needs an ai provider", zap.String("hint", "set ai.enabled to true"))
	}

	generator, err := newServices(ctx, config, logger).completer()
	if err != nil {
		logger.Fatal("building ai completer", zap.Error(err))
	}

	question, _ := cmd.Flags().GetString("question")
	answer, _ := cmd.Flags().GetString("answer")

	evaluation := interview.NewInterviewer(generator, config.Interview.Questions, logger).EvaluateAnswer(ctx, question, answer)

	if err := printJSON(cmd.OutOrStdout(), evaluation); err != nil {
		logger.Fatal("printing evaluation", zap.Error(err))
	}
}
