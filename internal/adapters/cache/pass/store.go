package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/bnema/walletdash/internal/domain"
	"github.com/bnema/walletdash/internal/ports"
)

var ErrUnavailable = errors.New("pass command unavailable")

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps cache entries in the pass password store under namespace.
type Store struct {
	namespace string
	run       runFunc
}

var _ ports.KeyValueStore = (*Store)(nil)

func NewStore(namespace string) *Store {
	return &Store{namespace: strings.Trim(namespace, "/"), run: runPassCommand}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry := s.entryName(key)
	_, stderr, err := s.run(ctx, value+"\n", "insert", "-m", "-f", entry)
	if err != nil {
		return formatError("put", entry, err, stderr)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entry := s.entryName(key)
	stdout, stderr, err := s.run(ctx, "", "show", entry)
	if err != nil {
		if strings.Contains(stderr, "is not in the password store") {
			return "", fmt.Errorf("pass entry %q: %w", entry, domain.ErrKeyNotFound)
		}
		return "", formatError("get", entry, err, stderr)
	}

	stdout = strings.TrimSuffix(stdout, "\n")
	stdout = strings.TrimSuffix(stdout, "\r")

	return stdout, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry := s.entryName(key)
	_, stderr, err := s.run(ctx, "", "rm", "-f", entry)
	if err != nil {
		if strings.Contains(stderr, "is not in the password store") {
			return nil
		}
		return formatError("delete", entry, err, stderr)
	}

	return nil
}

func (s *Store) entryName(key string) string {
	if s.namespace == "" {
		return key
	}
	return path.Join(s.namespace, key)
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	binary, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(op string, entry string, err error, stderr string) error {
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, entry, err)
	}

	return fmt.Errorf("pass %s %q: %w: %s", op, entry, err, stderr)
}
