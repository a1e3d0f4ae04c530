package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/fieldline/dayboard/core/logger"
	"github.com/fieldline/dayboard/core/model"
	"github.com/fieldline/dayboard/core/rebuild"
	infralogger "github.com/fieldline/dayboard/infra/logger"
)

// Config defines the connection parameters for the schedule publisher.
type Config struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	UseTLS      bool   `json:"use_tls"`
	ClientCert  string `json:"client_cert"`
	ClientKey   string `json:"client_key"`
	CABundle    string `json:"ca_bundle"`
	QoS         byte   `json:"qos"`
	Retain      bool   `json:"retain"`
	TopicPrefix string `json:"topic_prefix"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TopicPrefix == "" {
		c.TopicPrefix = "dayboard"
	}
	if c.ClientID == "" {
		c.ClientID = "dayboard-" + uuid.NewString()[:8]
	}
}

// Publisher pushes published schedules to technician devices. The full
// document goes to the board topic; each crew additionally receives its
// reconstructed timeline on its own topic.
type Publisher interface {
	PublishBoard(date string, doc model.ScheduleDocument) error
	PublishTimeline(date, crewID string, stops []rebuild.Stop) error
	Close()
}

// PahoPublisher implements Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli paho.Client
	cfg Config
	log logger.Logger
}

// NewPahoPublisher connects to the broker.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := newTLSConfig(cfg)
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	cli := paho.NewClient(opts)
	if tok := cli.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", tok.Error())
	}
	return &PahoPublisher{cli: cli, cfg: cfg, log: infralogger.New("schedule-publisher")}, nil
}

func newTLSConfig(cfg Config) (*tls.Config, error) {
	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if cfg.CABundle != "" {
		pem, err := os.ReadFile(cfg.CABundle)
		if err != nil {
			return nil, fmt.Errorf("read ca bundle: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates in %s", cfg.CABundle)
		}
		tlsCfg.RootCAs = pool
	}
	if cfg.ClientCert != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client cert: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}
	return tlsCfg, nil
}

func (p *PahoPublisher) publish(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	tok := p.cli.Publish(topic, p.cfg.QoS, p.cfg.Retain, data)
	if tok.Wait() && tok.Error() != nil {
		return fmt.Errorf("publish %s: %w", topic, tok.Error())
	}
	p.log.Debugw("published", map[string]any{"topic": topic, "bytes": len(data)})
	return nil
}

// PublishBoard pushes the whole finalized document.
func (p *PahoPublisher) PublishBoard(date string, doc model.ScheduleDocument) error {
	topic := fmt.Sprintf("%s/board/%s", p.cfg.TopicPrefix, date)
	return p.publish(topic, doc)
}

// timelineStop is the wire shape technician devices consume.
type timelineStop struct {
	JobNumber        string `json:"jobNumber"`
	JobType          string `json:"jobType"`
	Customer         string `json:"customer"`
	Address          string `json:"address"`
	StartTime        string `json:"startTime"`
	DriveTimeMinutes int    `json:"driveTimeMinutes"`
	RouteOrder       int    `json:"routeOrder"`
}

// PublishTimeline pushes one crew's reconstructed route.
func (p *PahoPublisher) PublishTimeline(date, crewID string, stops []rebuild.Stop) error {
	wire := make([]timelineStop, len(stops))
	for i, s := range stops {
		wire[i] = timelineStop{
			JobNumber:        s.Entry.JobNumber,
			JobType:          s.Entry.JobType,
			Customer:         s.Entry.Customer,
			Address:          s.Entry.Address,
			StartTime:        model.FormatClock(s.StartHours),
			DriveTimeMinutes: s.DriveTimeMinutes,
			RouteOrder:       s.RouteOrder,
		}
	}
	topic := fmt.Sprintf("%s/crew/%s/timeline/%s", p.cfg.TopicPrefix, crewID, date)
	return p.publish(topic, wire)
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	p.cli.Disconnect(250)
}
