package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/dlyog/dl-creator-cli/internal/domain"
	"github.com/dlyog/dl-creator-cli/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

const (
	passBinary         = "pass"
	storeDirEnv        = "PASSWORD_STORE_DIR"
	missingEntryMarker = "is not in the password store"
)

type invocation struct {
	args  []string
	stdin string
	env   []string
}

type runFunc func(ctx context.Context, inv invocation) (stdout string, stderr string, err error)

// Store keeps session credentials in the user's pass(1) store. When dir is
// set the entries live in that password store instead of the default one.
type Store struct {
	dir string
	run runFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(dir string) *Store {
	return &Store{dir: strings.TrimSpace(dir), run: runPass}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	_, err := s.call(ctx, "put", key, value+"\n", "insert", "--multiline", "--force", key)
	return err
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	stdout, err := s.call(ctx, "get", key, "", "show", key)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(stdout, "\r\n"), nil
}

// Delete succeeds when the entry is already gone.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.call(ctx, "delete", key, "", "rm", "--force", key)
	if errors.Is(err, domain.ErrSecretNotFound) {
		return nil
	}
	return err
}

func (s *Store) call(ctx context.Context, op string, key string, stdin string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("pass %s: secret key is empty", op)
	}

	inv := invocation{args: args, stdin: stdin}
	if s.dir != "" {
		inv.env = []string{storeDirEnv + "=" + s.dir}
	}

	stdout, stderr, err := s.run(ctx, inv)
	switch {
	case err == nil:
		return stdout, nil
	case errors.Is(err, ErrUnavailable):
		return "", err
	case strings.Contains(stderr, missingEntryMarker):
		return "", fmt.Errorf("pass %s %q: %w", op, key, domain.ErrSecretNotFound)
	case stderr != "":
		return "", fmt.Errorf("pass %s %q: %w: %s", op, key, err, stderr)
	default:
		return "", fmt.Errorf("pass %s %q: %w", op, key, err)
	}
}

func runPass(ctx context.Context, inv invocation) (string, string, error) {
	path, err := exec.LookPath(passBinary)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, inv.args...)
	if inv.stdin != "" {
		cmd.Stdin = strings.NewReader(inv.stdin)
	}
	if len(inv.env) > 0 {
		cmd.Env = append(os.Environ(), inv.env...)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}
