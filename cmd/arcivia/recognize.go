package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/arcivia/arcivia-explore/pkg/recognition"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <image>",
	Short: "Describe a still image with the vision model",
	Long: `recognize sends the image to Gemini and prints a one-sentence description.
With --watch the image is re-read and described on the live-recognition
schedule until interrupted, which is how the camera overlay behaves.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")

		ctx := cmd.Context()
		cfg := recognition.DefaultGeminiConfig(viper.GetString("gemini.api_key"))
		cfg.Model = viper.GetString("gemini.model")

		describer, err := recognition.NewGeminiDescriber(ctx, cfg)
		if err != nil {
			return fmt.Errorf("%w (set gemini.api_key or ARCIVIA_GEMINI_API_KEY)", err)
		}

		scanner := recognition.NewScanner(recognition.FileCapturer{Path: args[0]}, describer, recognition.DefaultConfig())
		out := cmd.OutOrStdout()

		if !watch {
			st, err := scanner.Scan(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, st.Text)
			return nil
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		scanner.Subscribe(func(st recognition.Status) {
			if st.Scanning {
				fmt.Fprintln(out, "Analyzing...")
				return
			}
			fmt.Fprintf(out, "[%s] %s\n", st.UpdatedAt.Format("15:04:05"), st.Text)
		})

		if err := scanner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recognizeCmd)
	recognizeCmd.Flags().Bool("watch", false, "Keep scanning until interrupted")
	recognizeCmd.Flags().String("api-key", "", "Gemini API key")
	recognizeCmd.Flags().String("model", recognition.DefaultModel, "Gemini model")
	bindFlag(recognizeCmd, "gemini.api_key", "api-key")
	bindFlag(recognizeCmd, "gemini.model", "model")
}
