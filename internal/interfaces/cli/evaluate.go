package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/spec"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// newEvaluateCmd evaluates one result against one tolerance rule given on
// the command line, without touching the database.  Useful for verifying a
// rule before registering it.
func newEvaluateCmd() *cobra.Command {
	var (
		kind      string
		result    float64
		target    float64
		tolerance float64
		minValue  float64
		maxValue  float64
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a result against a tolerance rule",
		Example: `  labqc evaluate --kind fixed --target 10 --tolerance 0.5 --result 10.2
  labqc evaluate --kind range --min 1 --max 5 --result 6
  labqc evaluate --kind max --max 2 --result 1.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only flags the caller actually set participate, so BuildRule
			// can report which parameter the rule kind is missing.
			set := func(name string, v *float64) *float64 {
				if cmd.Flags().Changed(name) {
					return v
				}
				return nil
			}
			rule, err := spec.BuildRule(ltypes.RuleKind(kind),
				set("target", &target), set("tolerance", &tolerance),
				set("min", &minValue), set("max", &maxValue))
			if err != nil {
				return err
			}

			verdict := spec.Evaluate(&result, rule)
			fmt.Fprintf(cmd.OutOrStdout(), "regra: %s\nresultado: %.4f\nstatus: %s\n",
				verdict.Description, result, verdict.Status)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&kind, "kind", "", "rule kind: fixed, range, max, min")
	f.Float64Var(&result, "result", 0, "measured result to evaluate")
	f.Float64Var(&target, "target", 0, "target value (fixed)")
	f.Float64Var(&tolerance, "tolerance", 0, "tolerance around the target (fixed)")
	f.Float64Var(&minValue, "min", 0, "lower bound (range, min)")
	f.Float64Var(&maxValue, "max", 0, "upper bound (range, max)")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("result")

	return cmd
}
