// Command seedkit sends one prompt to Volcengine Ark and prints the answer.
//
// Configuration is read from a YAML file and SEEDKIT_* environment
// variables (see pkg/config). Flags override both:
//
//	seedkit --model doubao-seed-1-6-250615 --stream "Why is the sky blue?"
//	echo "hi" | seedkit --protocol responses --thinking enabled
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/SweetRetry/seedkit-ai/pkg/api"
	"github.com/SweetRetry/seedkit-ai/pkg/config"
	"github.com/SweetRetry/seedkit-ai/pkg/debug"
	"github.com/SweetRetry/seedkit-ai/pkg/observability"
	"github.com/SweetRetry/seedkit-ai/pkg/provider"
	"github.com/SweetRetry/seedkit-ai/pkg/provider/ark"
)

type options struct {
	configPath  string
	model       string
	protocol    string
	system      string
	stream      bool
	thinking    string
	webSearch   bool
	metricsAddr string
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		slog.Error("seedkit failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var o options
	fs := flag.NewFlagSet("seedkit", flag.ContinueOnError)
	fs.StringVarP(&o.configPath, "config", "c", "", "path to the config file")
	fs.StringVarP(&o.model, "model", "m", "", "model id (overrides provider.default_model)")
	fs.StringVarP(&o.protocol, "protocol", "p", "", `wire protocol for this model: "chat" or "responses"`)
	fs.StringVarP(&o.system, "system", "s", "", "system prompt")
	fs.BoolVar(&o.stream, "stream", false, "stream the answer")
	fs.StringVar(&o.thinking, "thinking", "", `deep thinking: "enabled", "disabled" or "auto"`)
	fs.BoolVar(&o.webSearch, "web-search", false, "enable the web search native tool (responses protocol)")
	fs.StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	debug.Setup(debug.Settings{
		Categories: cfg.Log.Debug,
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
	})

	if o.model != "" {
		cfg.Provider.DefaultModel = o.model
	}
	if cfg.Provider.DefaultModel == "" {
		return errors.New("no model: set --model, SEEDKIT_MODEL or provider.default_model")
	}
	if o.protocol != "" {
		if _, ok := provider.ParseProtocol(o.protocol); !ok {
			return fmt.Errorf("unknown protocol %q", o.protocol)
		}
		if cfg.Provider.Models == nil {
			cfg.Provider.Models = map[string]config.ModelConfig{}
		}
		cfg.Provider.Models[cfg.Provider.DefaultModel] = config.ModelConfig{Protocol: o.protocol}
	}

	prompt, err := readPrompt(fs.Args(), stdin)
	if err != nil {
		return err
	}

	if o.metricsAddr != "" {
		cfg.Observability.Metrics.Enabled = true
		cfg.Observability.Metrics.Addr = o.metricsAddr
	}
	if cfg.Observability.Metrics.Enabled {
		stop := serveMetrics(cfg.Observability.Metrics)
		defer stop()
	}

	prov, err := ark.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating provider: %w", err)
	}
	defer prov.Close()

	opts, err := callOptions(o, prompt)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Debug("calling ark", "model", cfg.Provider.DefaultModel, "protocol", prov.ProtocolFor(cfg.Provider.DefaultModel), "stream", o.stream)
	if o.stream {
		return streamAnswer(ctx, prov, opts, stdout)
	}
	return printAnswer(ctx, prov, opts, stdout)
}

func readPrompt(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading prompt: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", errors.New("empty prompt")
	}
	return prompt, nil
}

func callOptions(o options, prompt string) (*provider.CallOptions, error) {
	var msgs []api.Message
	if o.system != "" {
		msgs = append(msgs, api.SystemMessage{Text: o.system})
	}
	msgs = append(msgs, api.UserMessage{Parts: []api.UserPart{api.TextPart{Text: prompt}}})

	opts := &provider.CallOptions{Messages: msgs}
	if o.thinking != "" {
		switch mode := provider.ThinkingMode(o.thinking); mode {
		case provider.ThinkingEnabled, provider.ThinkingDisabled, provider.ThinkingAuto:
			opts.ProviderOptions = &provider.ProviderOptions{Thinking: mode}
		default:
			return nil, fmt.Errorf("unknown thinking mode %q", o.thinking)
		}
	}
	if o.webSearch {
		opts.Tools = append(opts.Tools, provider.NativeTool{ID: provider.WebSearchToolID})
	}
	return opts, nil
}

func printAnswer(ctx context.Context, p provider.Provider, opts *provider.CallOptions, w io.Writer) error {
	result, err := p.Generate(ctx, opts)
	if err != nil {
		return err
	}
	logWarnings(result.Warnings)

	for _, block := range result.Content {
		switch b := block.(type) {
		case api.ReasoningBlock:
			fmt.Fprintf(w, "[reasoning] %s\n", b.Text)
		case api.TextBlock:
			fmt.Fprintln(w, b.Text)
		case api.ToolCallBlock:
			fmt.Fprintf(w, "[tool call %s] %s(%s)\n", b.ToolCallID, b.ToolName, b.Input)
		}
	}
	slog.Info("done", "finish_reason", result.FinishReason.Unified, "usage", usageAttrs(result.Usage))
	return nil
}

func streamAnswer(ctx context.Context, p provider.Provider, opts *provider.CallOptions, w io.Writer) error {
	ch, err := p.Stream(ctx, opts)
	if err != nil {
		return err
	}

	inReasoning := false
	for ev := range ch {
		switch e := ev.(type) {
		case api.StreamStart:
			logWarnings(e.Warnings)
		case api.ReasoningStart:
			inReasoning = true
			fmt.Fprint(w, "[reasoning] ")
		case api.ReasoningDelta:
			fmt.Fprint(w, e.Delta)
		case api.ReasoningEnd:
			if inReasoning {
				fmt.Fprintln(w)
			}
			inReasoning = false
		case api.TextDelta:
			fmt.Fprint(w, e.Delta)
		case api.TextEnd:
			fmt.Fprintln(w)
		case api.ToolCall:
			fmt.Fprintf(w, "[tool call %s] %s(%s)\n", e.ToolCallID, e.ToolName, e.Input)
		case api.Finish:
			slog.Info("done", "finish_reason", e.FinishReason.Unified, "usage", usageAttrs(e.Usage))
		case api.Error:
			return e.Err
		}
	}
	return nil
}

func logWarnings(warnings []api.CallWarning) {
	for _, w := range warnings {
		slog.Warn("call warning", "type", w.Type, "setting", w.Setting, "tool", w.Tool, "message", w.Message)
	}
}

func usageAttrs(u api.Usage) slog.Value {
	var attrs []slog.Attr
	add := func(key string, v *int) {
		if v != nil {
			attrs = append(attrs, slog.Int(key, *v))
		}
	}
	add("input", u.InputTotal)
	add("cache_read", u.InputCacheRead)
	add("output", u.OutputTotal)
	add("reasoning", u.OutputReasoning)
	return slog.GroupValue(attrs...)
}

// serveMetrics starts the metrics listener and returns a function that
// shuts it down.
func serveMetrics(mc config.MetricsConfig) func() {
	mux := http.NewServeMux()
	mux.Handle("GET "+mc.Path, observability.Handler())
	srv := &http.Server{Addr: mc.Addr, Handler: mux}

	go func() {
		slog.Info("metrics listening", "addr", mc.Addr, "path", mc.Path)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}
