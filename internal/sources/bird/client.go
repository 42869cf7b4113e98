package bird

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/MrSnakeDoc/xmarks/internal/logger"
)

// removeTimeout bounds a single unbookmark invocation. Removals are
// best-effort, so a hung CLI must not pin the request forever.
const removeTimeout = 30 * time.Second

// Client abstracts the bird CLI so orchestrators stay testable with a
// fake implementation.
type Client interface {
	// FetchAll retrieves the complete remote bookmark collection.
	FetchAll(ctx context.Context) ([]RawTweet, error)

	// Unbookmark removes one bookmark on the remote service.
	Unbookmark(ctx context.Context, id string) error
}

// CLIClient invokes the bird binary as a child process.
type CLIClient struct {
	bin          string
	authToken    string
	ct0          string
	fetchTimeout time.Duration
	logger       logger.Logger
}

// NewCLIClient creates a client for the bird binary at bin.
// Credentials come from configuration; they are passed as process
// arguments and never logged.
func NewCLIClient(bin, authToken, ct0 string, fetchTimeout time.Duration, log logger.Logger) *CLIClient {
	return &CLIClient{
		bin:          bin,
		authToken:    authToken,
		ct0:          ct0,
		fetchTimeout: fetchTimeout,
		logger:       log,
	}
}

// FetchAll runs `bird bookmarks --all --json` with a bounded wall-clock
// timeout and parses its stdout. Non-zero exit, timeout and unparsable
// output are all fatal to the fetch.
func (c *CLIClient) FetchAll(ctx context.Context) ([]RawTweet, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	args := []string{"bookmarks", "--all", "--json", "--auth-token", c.authToken, "--ct0", c.ct0}
	stdout, err := c.run(ctx, args)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("bird fetch timed out after %s", c.fetchTimeout)
		}
		return nil, fmt.Errorf("bird fetch failed: %w", err)
	}

	tweets, err := DecodeRawRecords(stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bird output: %w", err)
	}

	c.logger.Debug("fetched raw bookmarks from bird",
		logger.Int("count", len(tweets)))

	return tweets, nil
}

// Unbookmark runs `bird unbookmark <id>`. The caller decides whether a
// failure matters; this method only reports it.
func (c *CLIClient) Unbookmark(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, removeTimeout)
	defer cancel()

	args := []string{"unbookmark", id, "--auth-token", c.authToken, "--ct0", c.ct0}
	if _, err := c.run(ctx, args); err != nil {
		return fmt.Errorf("bird unbookmark %s failed: %w", id, err)
	}
	return nil
}

func (c *CLIClient) run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
