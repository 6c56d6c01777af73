package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	licenserender "github.com/dlyog/dl-creator-cli/internal/adapters/render/license"
	"github.com/dlyog/dl-creator-cli/internal/application"
	"github.com/dlyog/dl-creator-cli/internal/domain"
)

func newChatCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the license assistant",
		Long:  "Open an interactive chat with the license assistant. Enter sends, Tab cycles suggestions, /reset starts over, Esc quits.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			allowed, err := app.router.Enter(routeChat)
			if err != nil || !allowed {
				return err
			}

			pipeline := app.newPipeline(cmd)
			defer pipeline.Close()

			return runChatTUI(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), pipeline)
		},
	}

	cmd.AddCommand(newChatSendCmd(app), newChatSuggestionsCmd())

	return cmd
}

func newChatSendCmd(app *app) *cobra.Command {
	var suggestion int

	cmd := &cobra.Command{
		Use:   "send [message...]",
		Short: "Send one message and print the assistant's replies",
		RunE: func(cmd *cobra.Command, args []string) error {
			allowed, err := app.router.Enter(routeChat)
			if err != nil || !allowed {
				return err
			}

			pipeline := app.newPipeline(cmd)
			defer pipeline.Close()

			text := strings.Join(args, " ")
			if suggestion > 0 {
				if err := pipeline.UseSuggestion(suggestion - 1); err != nil {
					return err
				}
				text = pipeline.Input()
			}
			if strings.TrimSpace(text) == "" {
				return errors.New("chat send: message is empty")
			}

			before := len(pipeline.Transcript())
			if err := pipeline.Submit(cmd.Context(), text); err != nil {
				return fmt.Errorf("chat send: %w", err)
			}
			pipeline.Wait()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), licenserender.RenderTranscript(pipeline.Transcript()[before:], nil))
			return err
		},
	}

	cmd.Flags().IntVar(&suggestion, "suggestion", 0, "Send suggestion N (1-"+strconv.Itoa(len(domain.AssistantSuggestions))+") instead of a message")

	return cmd
}

func newChatSuggestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "suggestions",
		Short:       "List the suggested questions",
		Annotations: map[string]string{skipWireAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			for i, suggestion := range domain.AssistantSuggestions {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d. %s: %s\n", i+1, suggestion.Label, suggestion.Text); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) newPipeline(cmd *cobra.Command) *application.AssistantPipeline {
	pipeline := application.NewAssistantPipeline(cmd.Context(), a.assistant, a.session, a.clock, a.pipelineConfig(), a.logger)
	a.session.OnClear(pipeline.Reset)
	return pipeline
}
