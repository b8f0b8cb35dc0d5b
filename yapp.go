// Package yapp implements the YAPP file transfer protocol (WA7MBL Rev
// 1.1) over an order-preserving byte stream such as a serial TNC link.
//
// YAPP is a byte-oriented, half-duplex, packet-framed protocol: small
// control and data frames negotiate and carry a single file between two
// peers, with a bounded-retry crash timer guarding every wait on the
// remote station. The YappC checksum extension is recognized but
// declined, and resume requests are answered by restarting the file from
// byte zero.
//
// Example:
//
//	options := yapp.NewOptions()
//	options.Transport = serialTransport
//	options.DownloadDir = "downloads"
//
//	engine, err := yapp.New(options)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Kill()
//
//	engine.OnFinished(func(success bool, message string) {
//	    fmt.Println(message)
//	})
//
//	if _, err := engine.SendFile("report.txt"); err != nil {
//	    log.Fatal(err)
//	}
package yapp

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/yapp/transfer"
	"github.com/opd-ai/yapp/transport"
)

// Options contains configuration for creating a Yapp engine instance.
type Options struct {
	// Transport is the byte-stream link to the peer. Required.
	Transport transport.Transport

	// DownloadDir is where received files are written. Defaults to the
	// current directory.
	DownloadDir string

	// Timeout overrides the crash timer window. Zero keeps the protocol
	// default of 30 seconds.
	Timeout time.Duration
}

// NewOptions creates an Options struct with default values.
func NewOptions() *Options {
	return &Options{
		DownloadDir: ".",
		Timeout:     transfer.DefaultTimeout,
	}
}

// Yapp is a protocol engine bound to one transport. It runs at most one
// file transfer at a time in either direction.
type Yapp struct {
	session     *transfer.Session
	transport   transport.Transport
	downloadDir string
}

// New creates a Yapp engine, wiring the transport's inbound bytes into
// the protocol session.
func New(options *Options) (*Yapp, error) {
	if options == nil {
		options = NewOptions()
	}
	if options.Transport == nil {
		return nil, errors.New("options.Transport is required")
	}

	downloadDir := options.DownloadDir
	if downloadDir == "" {
		downloadDir = "."
	}

	session := transfer.NewSession(options.Transport)
	if options.Timeout > 0 {
		session.SetTimeout(options.Timeout)
	}

	y := &Yapp{
		session:     session,
		transport:   options.Transport,
		downloadDir: downloadDir,
	}
	options.Transport.SetReceiveCallback(session.Feed)

	logrus.WithFields(logrus.Fields{
		"function":     "New",
		"download_dir": downloadDir,
		"timeout":      options.Timeout,
	}).Info("YAPP engine created")

	return y, nil
}

// SendFile begins sending the file at path to the peer. It fails if a
// transfer is already active.
func (y *Yapp) SendFile(path string) (string, error) {
	return y.session.StartSend(path)
}

// Receive prepares the engine to accept the next incoming file into the
// configured download directory. It fails if a transfer is already
// active.
func (y *Yapp) Receive() (string, error) {
	return y.session.StartReceive(y.downloadDir)
}

// Cancel aborts the active transfer. It is a silent no-op when nothing is
// active.
func (y *Yapp) Cancel() {
	y.session.Cancel()
}

// Reset returns a finished engine to the idle state so another transfer
// can start.
func (y *Yapp) Reset() {
	y.session.Reset()
}

// IsActive reports whether a transfer is in progress.
func (y *Yapp) IsActive() bool {
	return y.session.IsActive()
}

// Filename returns the name of the file in the current or last transfer.
func (y *Yapp) Filename() string {
	return y.session.Filename()
}

// FileSize returns the declared size of the file being transferred.
func (y *Yapp) FileSize() uint64 {
	return y.session.FileSize()
}

// BytesTransferred returns the running byte counter.
func (y *Yapp) BytesTransferred() uint64 {
	return y.session.BytesTransferred()
}

// OnProgress registers the progress callback.
func (y *Yapp) OnProgress(callback func(transferred, total uint64)) {
	y.session.OnProgress(callback)
}

// OnEvent registers the protocol-log callback.
func (y *Yapp) OnEvent(callback func(kind transfer.EventKind, message string)) {
	y.session.OnEvent(callback)
}

// OnFinished registers the terminal-outcome callback.
func (y *Yapp) OnFinished(callback func(success bool, message string)) {
	y.session.OnFinished(callback)
}

// OnRawData registers the passthrough callback for bytes that arrive
// while no transfer is active.
func (y *Yapp) OnRawData(callback func(data []byte)) {
	y.session.OnRawData(callback)
}

// Kill releases the engine's resources, closing the transport.
func (y *Yapp) Kill() {
	y.session.Reset()
	if err := y.transport.Close(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Kill",
			"error":    err.Error(),
		}).Warn("Failed to close transport")
	}
}
