// Package session provides the SSH CLI device session adapter. It drives an
// interactive shell on the device, issuing one command per round-trip and
// reading output until the device prompt returns.
package session

import (
	"context"
	"io"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/configsmith/device-reconciler/internal/core/ports"
	"github.com/configsmith/device-reconciler/internal/errors"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultInterval = 100 * time.Millisecond

	persistCommand = "write memory"
	enterConfig    = "configure"
	exitConfig     = "exit"
)

// promptPattern matches a device CLI prompt at the end of output, in both
// exec (>) and privileged/config (#) modes.
var promptPattern = regexp.MustCompile(`(?m)^[\w.()\[\]-]*[>#]\s*$`)

// rejectPattern matches the error banners devices print for refused
// commands.
var rejectPattern = regexp.MustCompile(`(?im)^%|invalid input|^error[: ]|unknown command`)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	KeyFile  string
	Timeout  time.Duration

	// CommandInterval spaces out command submission; devices drop input
	// pasted faster than the CLI consumes it.
	CommandInterval time.Duration
}

// CLISession implements ports.DeviceSession over one interactive SSH shell.
// All methods serialize on an internal mutex; the session is a single
// ordered command stream.
type CLISession struct {
	cfg     Config
	client  *ssh.Client
	shell   *ssh.Session
	stdin   io.WriteCloser
	chunks  chan string
	group   *errgroup.Group
	limiter *rate.Limiter
	logger  ports.Logger

	mu sync.Mutex
}

// Dial connects, starts an interactive shell and consumes the login banner
// up to the first prompt.
func Dial(ctx context.Context, cfg Config, logger ports.Logger) (*CLISession, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CommandInterval <= 0 {
		cfg.CommandInterval = defaultInterval
	}
	if cfg.Port == 0 {
		cfg.Port = 22
	}

	auth, err := authMethods(cfg)
	if err != nil {
		return nil, err
	}

	clientCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         cfg.Timeout,
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	client, err := ssh.Dial("tcp", addr, clientCfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSessionError, "failed to connect to "+addr)
	}

	shell, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, errors.Wrap(err, errors.CodeSessionError, "failed to open device shell session")
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err = shell.RequestPty("vt100", 0, 512, modes); err != nil {
		shell.Close()
		client.Close()
		return nil, errors.Wrap(err, errors.CodeSessionError, "failed to request pty")
	}

	stdin, err := shell.StdinPipe()
	if err != nil {
		shell.Close()
		client.Close()
		return nil, errors.Wrap(err, errors.CodeSessionError, "failed to open shell stdin")
	}
	stdout, err := shell.StdoutPipe()
	if err != nil {
		shell.Close()
		client.Close()
		return nil, errors.Wrap(err, errors.CodeSessionError, "failed to open shell stdout")
	}
	if err = shell.Shell(); err != nil {
		shell.Close()
		client.Close()
		return nil, errors.Wrap(err, errors.CodeSessionError, "failed to start device shell")
	}

	s := &CLISession{
		cfg:     cfg,
		client:  client,
		shell:   shell,
		stdin:   stdin,
		chunks:  make(chan string, 64),
		limiter: rate.NewLimiter(rate.Every(cfg.CommandInterval), 1),
		logger:  logger.WithFields(map[string]any{"component": "session", "host": cfg.Host}),
	}

	s.group, _ = errgroup.WithContext(context.Background())
	s.group.Go(func() error {
		defer close(s.chunks)
		buf := make([]byte, 4096)
		for {
			n, readErr := stdout.Read(buf)
			if n > 0 {
				s.chunks <- string(buf[:n])
			}
			if readErr != nil {
				return nil
			}
		}
	})

	// Swallow the login banner so the first command starts from a clean
	// prompt.
	if _, err = s.readUntilPrompt(ctx); err != nil {
		s.Close()
		return nil, errors.Wrap(err, errors.CodeSessionError, "device did not present a prompt")
	}

	s.logger.Debugf(ctx, "Session established")
	return s, nil
}

func authMethods(cfg Config) ([]ssh.AuthMethod, error) {
	var auth []ssh.AuthMethod
	if cfg.KeyFile != "" {
		key, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfigReadError, "failed to read ssh key file")
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to parse ssh private key")
		}
		auth = append(auth, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		auth = append(auth, ssh.Password(cfg.Password))
	}
	if len(auth) == 0 {
		return nil, errors.New(errors.CodeConfigValidation, "no ssh credentials configured")
	}
	return auth, nil
}

func (s *CLISession) Fetch(ctx context.Context, command string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run(ctx, command)
}

func (s *CLISession) SubmitSingle(ctx context.Context, command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submit(ctx, command)
}

// SubmitBatch enters configuration mode, applies lines in order and exits.
// The first refusal aborts the batch; previously accepted lines are left in
// place.
func (s *CLISession) SubmitBatch(ctx context.Context, lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.submit(ctx, enterConfig); err != nil {
		return err
	}
	for _, line := range lines {
		if err := s.submit(ctx, line); err != nil {
			return err
		}
	}
	return s.submit(ctx, exitConfig)
}

func (s *CLISession) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submit(ctx, persistCommand)
}

func (s *CLISession) Host() string {
	return s.cfg.Host
}

func (s *CLISession) Close() error {
	s.stdin.Close()
	s.shell.Close()
	err := s.client.Close()
	s.group.Wait()
	return err
}

// submit runs a state-changing command and inspects the device's reply for
// a refusal banner. Callers hold the session mutex.
func (s *CLISession) submit(ctx context.Context, command string) error {
	out, err := s.run(ctx, command)
	if err != nil {
		return err
	}
	if rejectPattern.MatchString(out) {
		return errors.Newf(errors.CodeDeviceRejected, "device rejected %q: %s", command, firstLine(out))
	}
	return nil
}

// run writes one command and reads everything up to the next prompt.
// Callers hold the session mutex.
func (s *CLISession) run(ctx context.Context, command string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, errors.CodeSessionError, "command pacing interrupted")
	}
	if _, err := io.WriteString(s.stdin, command+"\n"); err != nil {
		return "", errors.Wrap(err, errors.CodeSessionError, "failed to send command to device")
	}

	out, err := s.readUntilPrompt(ctx)
	if err != nil {
		return "", err
	}
	return stripEcho(out, command), nil
}

// readUntilPrompt accumulates shell output until a prompt terminates it or
// the session timeout elapses.
func (s *CLISession) readUntilPrompt(ctx context.Context) (string, error) {
	var sb strings.Builder
	timer := time.NewTimer(s.cfg.Timeout)
	defer timer.Stop()

	for {
		select {
		case chunk, ok := <-s.chunks:
			if !ok {
				return "", errors.New(errors.CodeSessionError, "device session closed unexpectedly")
			}
			sb.WriteString(chunk)
			if promptPattern.MatchString(sb.String()) {
				return trimPrompt(sb.String()), nil
			}
		case <-timer.C:
			return "", errors.New(errors.CodeSessionError, "timed out waiting for device prompt")
		case <-ctx.Done():
			return "", errors.Wrap(ctx.Err(), errors.CodeSessionError, "command cancelled")
		}
	}
}

// trimPrompt drops the trailing prompt line from captured output.
func trimPrompt(out string) string {
	loc := promptPattern.FindAllStringIndex(out, -1)
	if len(loc) == 0 {
		return out
	}
	last := loc[len(loc)-1]
	if strings.TrimSpace(out[last[1]:]) == "" {
		return out[:last[0]]
	}
	return out
}

// stripEcho removes the echoed command from the head of the output.
func stripEcho(out, command string) string {
	trimmed := strings.TrimLeft(out, "\r\n")
	if strings.HasPrefix(trimmed, command) {
		trimmed = trimmed[len(command):]
		trimmed = strings.TrimLeft(trimmed, "\r\n")
	}
	return trimmed
}

func firstLine(out string) string {
	for _, line := range strings.Split(out, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}

var _ ports.DeviceSession = (*CLISession)(nil)
