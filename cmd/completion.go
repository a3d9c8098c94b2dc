package cmd

import (
	"github.com/etnz/allocation/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"go.uber.org/zap"
)

// statements predicts the statement files accepted by the analysis commands.
var statements = predict.Or(
	predict.Files("*.xlsx"),
	predict.Files("*.xlsm"),
	predict.Files("*.xls"),
	predict.Files("*.csv"),
	predict.Files("*.txt"),
)

// presetNames predicts the names of the presets in the presets file.
var presetNames = complete.PredictFunc(func(prefix string) []string {
	return OpenPresets(zap.NewNop()).Names()
})

// topicNames predicts the documentation topics.
var topicNames = complete.PredictFunc(func(prefix string) []string {
	names, _ := docs.GetAllTopics()
	return names
})

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	analysis := func(flags map[string]complete.Predictor) *complete.Command {
		flags["preset"] = presetNames
		return &complete.Command{Flags: flags, Args: statements}
	}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"analyze": analysis(map[string]complete.Predictor{
				"out":     predict.Dirs("*"),
				"json":    predict.Nothing,
				"preview": predict.Something,
			}),
			"summary": analysis(map[string]complete.Predictor{
				"q": predict.Set{"$.summary", "$.summary.aum_total", "$.mapping", "$.warnings"},
			}),
			"columns":  analysis(map[string]complete.Predictor{}),
			"classify": {Args: predict.Something},
			"topic": {
				Flags: map[string]complete.Predictor{"list": predict.Nothing},
				Args:  topicNames,
			},
		},
		Flags: map[string]complete.Predictor{
			"presets":    predict.Or(predict.Files("*.yaml"), predict.Files("*.yml"), predict.Files("*.json")),
			"log-level":  predict.Set{"debug", "info", "warn", "error"},
			"log-format": predict.Set{"console", "json"},
		},
	}
}
