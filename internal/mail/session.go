package mail

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"wordofday/internal/config"

	"gopkg.in/gomail.v2"
)

const (
	implicitTLSPort = 465
	dialTimeout     = 10 * time.Second
)

// ErrInsecureSession is returned when a server cannot provide an encrypted,
// authenticated session.
var ErrInsecureSession = errors.New("SMTP server does not offer a secure authenticated session")

// SessionDialer opens SMTP sessions that are always encrypted and
// authenticated. Port 465 uses implicit TLS, every other port must complete
// STARTTLS before credentials are sent.
type SessionDialer struct {
	host      string
	port      int
	username  string
	password  string
	tlsConfig *tls.Config
}

// NewSessionDialer creates a SessionDialer. A nil tlsConfig verifies the
// server certificate against cfg.Host.
func NewSessionDialer(cfg config.SMTPConfig, tlsConfig *tls.Config) *SessionDialer {
	if tlsConfig == nil {
		tlsConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	}
	return &SessionDialer{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  cfg.Password,
		tlsConfig: tlsConfig,
	}
}

// Dial connects, negotiates TLS and authenticates
func (d *SessionDialer) Dial() (gomail.SendCloser, error) {
	addr := net.JoinHostPort(d.host, strconv.Itoa(d.port))
	dialer := &net.Dialer{Timeout: dialTimeout}

	var conn net.Conn
	var err error
	if d.port == implicitTLSPort {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, d.tlsConfig)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return nil, err
	}

	c, err := smtp.NewClient(conn, d.host)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := d.secure(c); err != nil {
		c.Close()
		return nil, err
	}

	return &session{client: c}, nil
}

func (d *SessionDialer) secure(c *smtp.Client) error {
	if _, isTLS := c.TLSConnectionState(); !isTLS {
		if ok, _ := c.Extension("STARTTLS"); !ok {
			return fmt.Errorf("%w: STARTTLS not offered by %s", ErrInsecureSession, d.host)
		}
		if err := c.StartTLS(d.tlsConfig); err != nil {
			return fmt.Errorf("STARTTLS failed: %w", err)
		}
	}

	ok, mechanisms := c.Extension("AUTH")
	if !ok {
		return fmt.Errorf("%w: AUTH not offered by %s", ErrInsecureSession, d.host)
	}
	auth, err := d.auth(mechanisms)
	if err != nil {
		return err
	}
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	return nil
}

func (d *SessionDialer) auth(mechanisms string) (smtp.Auth, error) {
	offered := strings.Fields(strings.ToUpper(mechanisms))
	has := func(name string) bool {
		for _, m := range offered {
			if m == name {
				return true
			}
		}
		return false
	}

	switch {
	case has("PLAIN"):
		return smtp.PlainAuth("", d.username, d.password, d.host), nil
	case has("LOGIN"):
		return &loginAuth{username: d.username, password: d.password}, nil
	case has("CRAM-MD5"):
		return smtp.CRAMMD5Auth(d.username, d.password), nil
	default:
		return nil, fmt.Errorf("%w: no supported AUTH mechanism in %q", ErrInsecureSession, mechanisms)
	}
}

type loginAuth struct {
	username string
	password string
}

func (a *loginAuth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	if !server.TLS {
		return "", nil, errors.New("unencrypted connection")
	}
	return "LOGIN", nil, nil
}

func (a *loginAuth) Next(fromServer []byte, more bool) ([]byte, error) {
	if !more {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(string(fromServer))) {
	case "username:":
		return []byte(a.username), nil
	case "password:":
		return []byte(a.password), nil
	default:
		return nil, fmt.Errorf("unexpected server challenge: %q", fromServer)
	}
}

// session adapts an authenticated smtp.Client to gomail.SendCloser
type session struct {
	client *smtp.Client
}

func (s *session) Send(from string, to []string, msg io.WriterTo) error {
	if err := s.client.Mail(from); err != nil {
		return err
	}
	for _, addr := range to {
		if err := s.client.Rcpt(addr); err != nil {
			return err
		}
	}

	w, err := s.client.Data()
	if err != nil {
		return err
	}
	if _, err := msg.WriteTo(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (s *session) Close() error {
	if err := s.client.Quit(); err != nil {
		s.client.Close()
		return err
	}
	return nil
}
