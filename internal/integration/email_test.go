package integration

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shri-jewellery/storefront/internal/config"
)

// fakeSMTP accepts a single plaintext session and reports the DATA payload.
func fakeSMTP(t *testing.T) (host string, port int, data <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		reply := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }

		reply("220 fake ESMTP")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				reply("250 fake")
			case strings.HasPrefix(cmd, "MAIL FROM"), strings.HasPrefix(cmd, "RCPT TO"):
				reply("250 OK")
			case cmd == "DATA":
				reply("354 go ahead")
				var sb strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					sb.WriteString(l)
				}
				out <- sb.String()
				reply("250 queued")
			case cmd == "QUIT":
				reply("221 bye")
				return
			default:
				reply("250 OK")
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port, out
}

func TestSMTPSender(t *testing.T) {
	host, port, data := fakeSMTP(t)
	sender := NewEmailSender(config.MailConfig{
		Server:        host,
		Port:          port,
		DefaultSender: "orders@shri.example",
		Timeout:       2 * time.Second,
	})

	require.NoError(t, sender.SendEmail(context.Background(), "asha@example.com", "Order ABC Confirmed", "Thank you Asha!"))

	select {
	case msg := <-data:
		assert.Contains(t, msg, "To: asha@example.com\r\n")
		assert.Contains(t, msg, "Subject: Order ABC Confirmed\r\n")
		assert.Contains(t, msg, "Thank you Asha!")
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestSMTPSenderRequiresStartTLSWhenConfigured(t *testing.T) {
	host, port, _ := fakeSMTP(t)
	sender := NewEmailSender(config.MailConfig{
		Server:        host,
		Port:          port,
		UseTLS:        true,
		DefaultSender: "orders@shri.example",
		Timeout:       2 * time.Second,
	})

	assert.Error(t, sender.SendEmail(context.Background(), "a@b.c", "s", "b"))
}

func TestSMTPSenderUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	sender := NewEmailSender(config.MailConfig{Server: "127.0.0.1", Port: port, DefaultSender: "x@y.z", Timeout: time.Second})
	err = sender.SendEmail(context.Background(), "a@b.c", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), strconv.Itoa(port))
}

func TestEmailSenderDisabled(t *testing.T) {
	assert.ErrorIs(t, NewEmailSender(config.MailConfig{}).SendEmail(context.Background(), "a", "b", "c"), ErrDisabled)
}

func TestBuildMessageStripsHeaderInjection(t *testing.T) {
	msg := string(buildMessage("from@x", "to@x\r\nBcc: evil@x", "Hi", "line1\nline2"))
	assert.NotContains(t, msg, "\r\nBcc:")
	assert.Contains(t, msg, "line1\r\nline2")
}
