package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rojolang/elevenlabs-sdk-go/pkg/elevenlabs"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	apiKey  string
	baseURL string

	voiceID      string
	modelID      string
	outputFormat string
	outputFile   string
	play         bool
	stream       bool

	pageSize   int
	targetLang string
	sourceLang string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "elevenlabs",
		Short: "ElevenLabs SDK Go CLI",
		Long:  "A command-line interface for the ElevenLabs SDK Go library",
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for authentication")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL")

	// Add subcommands
	rootCmd.AddCommand(speakCmd())
	rootCmd.AddCommand(voicesCmd())
	rootCmd.AddCommand(modelsCmd())
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(dubCmd())

	if err := rootCmd.Execute(); err != nil {
		elevenlabs.GetGlobalLogger().WithError(err).Fatal("CLI execution failed")
	}
}

func newClient() *elevenlabs.Client {
	_ = godotenv.Load()

	var opts []elevenlabs.Option
	if apiKey != "" {
		opts = append(opts, elevenlabs.WithAPIKey(apiKey))
	}
	if baseURL != "" {
		opts = append(opts, elevenlabs.WithBaseURL(baseURL))
	}
	if verbose {
		opts = append(opts, elevenlabs.WithLogger(elevenlabs.NewLogger(&elevenlabs.LogConfig{
			Level:  elevenlabs.DebugLevel,
			Pretty: true,
			Output: os.Stderr,
		})))
	}

	client, err := elevenlabs.NewClient(opts...)
	if err != nil {
		elevenlabs.GetGlobalLogger().WithError(err).Fatal("Client construction failed")
	}
	return client
}

func speakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speak [text]",
		Short: "Synthesize speech from text",
		Long:  "Convert text to speech with the selected voice and write or play the audio",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			text := args[0]
			client := newClient()
			ctx := context.Background()

			opts := &elevenlabs.SynthesisOptions{
				ModelID:      modelID,
				OutputFormat: outputFormat,
			}

			if play {
				playSynthesis(ctx, client, text, opts)
				return
			}

			var audio []byte
			var err error
			if stream {
				fmt.Println("Streaming synthesis...")
				err = client.TextToSpeech.Stream(ctx, voiceID, text, opts, func(chunk []byte) {
					audio = append(audio, chunk...)
				})
			} else {
				audio, err = client.TextToSpeech.Convert(ctx, voiceID, text, opts)
			}
			if err != nil {
				elevenlabs.GetGlobalLogger().WithError(err).Fatal("Synthesis failed")
			}

			if err := os.WriteFile(outputFile, audio, 0o644); err != nil {
				elevenlabs.GetGlobalLogger().WithError(err).Fatal("Writing audio file failed")
			}
			fmt.Printf("Wrote %d bytes to %s\n", len(audio), outputFile)
		},
	}

	cmd.Flags().StringVar(&voiceID, "voice", "21m00Tcm4TlvDq8ikWAM", "Voice ID to synthesize with")
	cmd.Flags().StringVar(&modelID, "model", "", "Model ID (empty lets the service pick)")
	cmd.Flags().StringVar(&outputFormat, "format", "", "Output format, e.g. mp3_44100_128 or pcm_22050")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "output.mp3", "Output file path")
	cmd.Flags().BoolVar(&play, "play", false, "Play the audio on the default output device (requires a pcm format)")
	cmd.Flags().BoolVar(&stream, "stream", false, "Use the streaming endpoint")
	return cmd
}

// playSynthesis streams PCM audio straight to the default output device.
func playSynthesis(ctx context.Context, client *elevenlabs.Client, text string, opts *elevenlabs.SynthesisOptions) {
	if opts.OutputFormat == "" {
		opts.OutputFormat = "pcm_22050"
	}
	rate, err := pcmSampleRate(opts.OutputFormat)
	if err != nil {
		elevenlabs.GetGlobalLogger().WithError(err).Fatal("Playback requires a pcm output format")
	}

	player, err := elevenlabs.NewPlayer(rate)
	if err != nil {
		elevenlabs.GetGlobalLogger().WithError(err).Fatal("Opening audio output failed")
	}
	defer player.Close()

	fmt.Println("Playing...")
	err = client.TextToSpeech.Stream(ctx, voiceID, text, opts, func(chunk []byte) {
		player.Write(chunk)
	})
	if err != nil {
		elevenlabs.GetGlobalLogger().WithError(err).Fatal("Synthesis failed")
	}
	player.Drain()
	fmt.Println("Playback completed successfully!")
}

// pcmSampleRate extracts the sample rate from formats like pcm_22050.
func pcmSampleRate(format string) (int, error) {
	rest, ok := strings.CutPrefix(format, "pcm_")
	if !ok {
		return 0, fmt.Errorf("format %q is not pcm", format)
	}
	rate, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("format %q has no sample rate", format)
	}
	return rate, nil
}

func voicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voices",
		Short: "Voice management",
		Long:  "Commands for listing and inspecting voices",
	}

	cmd.AddCommand(voicesListCmd())
	cmd.AddCommand(voicesGetCmd())

	return cmd
}

func voicesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available voices",
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			voices, err := client.Voices.List(context.Background())
			if err != nil {
				elevenlabs.GetGlobalLogger().WithError(err).Fatal("Listing voices failed")
			}

			fmt.Printf("Available Voices (%d):\n", len(voices))
			for _, v := range voices {
				category := v.Category
				if category == "" {
					category = "unknown"
				}
				fmt.Printf("  %s: %s (%s)\n", v.VoiceID, v.Name, category)
			}
		},
	}
}

func voicesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [voice-id]",
		Short: "Show one voice with its settings",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			v, err := client.Voices.Get(context.Background(), args[0], true)
			if err != nil {
				elevenlabs.GetGlobalLogger().WithError(err).Fatal("Fetching voice failed")
			}

			fmt.Printf("Voice: %s\n", v.Name)
			fmt.Printf("  ID: %s\n", v.VoiceID)
			fmt.Printf("  Category: %s\n", v.Category)
			if v.Description != "" {
				fmt.Printf("  Description: %s\n", v.Description)
			}
			for k, val := range v.Labels {
				fmt.Printf("  Label %s: %s\n", k, val)
			}
			if v.Settings != nil {
				if v.Settings.Stability != nil {
					fmt.Printf("  Stability: %.2f\n", *v.Settings.Stability)
				}
				if v.Settings.SimilarityBoost != nil {
					fmt.Printf("  Similarity Boost: %.2f\n", *v.Settings.SimilarityBoost)
				}
			}
		},
	}
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available models",
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			models, err := client.Models.List(context.Background())
			if err != nil {
				elevenlabs.GetGlobalLogger().WithError(err).Fatal("Listing models failed")
			}

			fmt.Printf("Available Models (%d):\n", len(models))
			for _, m := range models {
				fmt.Printf("  %s: %s\n", m.ModelID, m.Name)
				if len(m.Languages) > 0 {
					langs := make([]string, 0, len(m.Languages))
					for _, l := range m.Languages {
						langs = append(langs, l.LanguageID)
					}
					fmt.Printf("    Languages: %s\n", strings.Join(langs, ", "))
				}
			}
		},
	}
}

func userCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user",
		Short: "Show account and subscription info",
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx := context.Background()

			user, err := client.User.Get(ctx)
			if err != nil {
				elevenlabs.GetGlobalLogger().WithError(err).Fatal("Fetching user failed")
			}

			sub := user.Subscription
			fmt.Println("Account:")
			fmt.Printf("  User ID: %s\n", user.UserID)
			fmt.Printf("  Tier: %s\n", sub.Tier)
			fmt.Printf("  Characters: %d / %d\n", sub.CharacterCount, sub.CharacterLimit)
			if sub.NextCharacterCountResetUnix > 0 {
				reset := time.Unix(sub.NextCharacterCountResetUnix, 0)
				fmt.Printf("  Quota resets: %s\n", reset.Format(time.RFC1123))
			}
			fmt.Printf("  Voice limit: %d\n", sub.VoiceLimit)
		},
	}
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Generated-audio history",
		Long:  "Commands for listing and downloading past generations",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyDownloadCmd())

	return cmd
}

func historyListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent generations",
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			page, err := client.History.List(context.Background(), &elevenlabs.HistoryListOptions{
				PageSize: pageSize,
			})
			if err != nil {
				elevenlabs.GetGlobalLogger().WithError(err).Fatal("Listing history failed")
			}

			fmt.Printf("History (%d items, more=%v):\n", len(page.History), page.HasMore)
			for _, item := range page.History {
				when := time.Unix(item.DateUnix, 0).Format("2006-01-02 15:04")
				text := item.Text
				if len(text) > 48 {
					text = text[:48] + "..."
				}
				fmt.Printf("  %s  %s  [%s] %q\n", item.HistoryItemID, when, item.VoiceName, text)
			}
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Number of items per page")
	return cmd
}

func historyDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download [history-item-id...]",
		Short: "Download audio for one or more history items",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			data, err := client.History.Download(context.Background(), args)
			if err != nil {
				elevenlabs.GetGlobalLogger().WithError(err).Fatal("Download failed")
			}

			name := outputFile
			if name == "" {
				name = "history.mp3"
				if len(args) > 1 {
					name = "history.zip"
				}
			}
			if err := os.WriteFile(name, data, 0o644); err != nil {
				elevenlabs.GetGlobalLogger().WithError(err).Fatal("Writing file failed")
			}
			fmt.Printf("Wrote %d bytes to %s\n", len(data), name)
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")
	return cmd
}

func dubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dub",
		Short: "Dubbing jobs",
		Long:  "Commands for creating and inspecting dubbing jobs",
	}

	cmd.AddCommand(dubCreateCmd())
	cmd.AddCommand(dubStatusCmd())

	return cmd
}

func dubCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [media-file]",
		Short: "Start a dubbing job from a local file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			f, err := os.Open(args[0])
			if err != nil {
				elevenlabs.GetGlobalLogger().WithError(err).Fatal("Opening media file failed")
			}
			defer f.Close()

			client := newClient()
			job, err := client.Dubbing.Create(context.Background(), &elevenlabs.DubbingRequest{
				File:           elevenlabs.NewFilePart(f, args[0]),
				SourceLanguage: sourceLang,
				TargetLanguage: targetLang,
			})
			if err != nil {
				elevenlabs.GetGlobalLogger().WithError(err).Fatal("Creating dubbing job failed")
			}

			fmt.Printf("Dubbing job started: %s (status: %s)\n", job.DubbingID, job.Status)
		},
	}

	cmd.Flags().StringVar(&targetLang, "target", "", "Target language code, e.g. es")
	cmd.Flags().StringVar(&sourceLang, "source", "", "Source language code (empty auto-detects)")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func dubStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [dubbing-id]",
		Short: "Show the state of a dubbing job",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			job, err := client.Dubbing.Get(context.Background(), args[0])
			if err != nil {
				elevenlabs.GetGlobalLogger().WithError(err).Fatal("Fetching dubbing job failed")
			}

			fmt.Printf("Job %s: %s\n", job.DubbingID, job.Status)
			if len(job.TargetLanguages) > 0 {
				fmt.Printf("  Target languages: %s\n", strings.Join(job.TargetLanguages, ", "))
			}
			if job.Error != "" {
				fmt.Printf("  Error: %s\n", job.Error)
			}
		},
	}
}
