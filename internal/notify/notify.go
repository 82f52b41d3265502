package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/cashflow-service/internal/config"
	"github.com/Dan9191/cashflow-service/internal/forecast"
	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	msgSubject  = "Cash-flow risk alert for %s: %s"
	msgGreeting = "Hello,\n\nThe cash-flow forecast for %s from %s to %s shows a %s risk level.\n"
	msgLowest   = "Lowest projected balance: %.2f %s in %s.\n"
	msgPeriod   = "%s: income %.2f, expenses %.2f, balance %.2f (confidence %d%%)\n"
	msgSignoff  = "\nThis message was sent because of your risk alert subscription.\n"
)

var romanianMessages = map[string]string{
	msgSubject:  "Alertă de risc pentru fluxul de numerar %s: %s",
	msgGreeting: "Bună ziua,\n\nPrognoza fluxului de numerar pentru %s în perioada %s - %s indică un nivel de risc %s.\n",
	msgLowest:   "Cel mai mic sold prognozat: %.2f %s în %s.\n",
	msgPeriod:   "%s: încasări %.2f, cheltuieli %.2f, sold %.2f (încredere %d%%)\n",
	msgSignoff:  "\nAcest mesaj a fost trimis pe baza abonamentului dumneavoastră la alertele de risc.\n",
}

var riskNames = map[language.Tag]map[models.RiskLevel]string{
	language.Romanian: {
		models.RiskLow:      "scăzut",
		models.RiskMedium:   "moderat",
		models.RiskHigh:     "ridicat",
		models.RiskCritical: "critic",
	},
}

func init() {
	for key, text := range romanianMessages {
		if err := message.SetString(language.Romanian, key, text); err != nil {
			panic(err)
		}
	}
}

// Sender delivers risk alert e-mails via SMTP
type Sender struct {
	cfg     *config.Config
	logger  *logrus.Logger
	deliver func(*email.Email) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	s := &Sender{cfg: cfg, logger: logger}
	s.deliver = s.sendSMTP
	return s
}

// SendRiskAlert e-mails the subscriber a summary of the forecast in the
// subscription's locale
func (s *Sender) SendRiskAlert(sub models.AlertSubscription, summary *models.ForecastSummary) error {
	e := s.BuildRiskAlert(sub, summary)
	if err := s.deliver(e); err != nil {
		s.logger.Errorf("Failed to send risk alert to %s: %v", sub.Email, err)
		return fmt.Errorf("failed to send risk alert: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"organization_id": sub.OrganizationID,
		"risk_level":      summary.RiskLevel,
	}).Infof("Email sent to %s: %s", sub.Email, e.Subject)
	return nil
}

// BuildRiskAlert renders the alert message without sending it
func (s *Sender) BuildRiskAlert(sub models.AlertSubscription, summary *models.ForecastSummary) *email.Email {
	tag := forecast.MatchLocale(s.cfg.DefaultLocale, sub.Locale)
	p := message.NewPrinter(tag)
	name := sub.OrganizationName
	if name == "" {
		name = sub.OrganizationID
	}
	level := riskName(summary.RiskLevel, tag)

	var body strings.Builder
	body.WriteString(p.Sprintf(msgGreeting, name,
		summary.StartDate.Format("2006-01-02"), summary.EndDate.Format("2006-01-02"), level))
	body.WriteString(p.Sprintf(msgLowest, summary.LowestBalance, summary.Currency,
		forecast.MonthLabel(summary.LowestBalanceDate, tag)))
	body.WriteString("\n")
	for _, period := range summary.Forecasts {
		body.WriteString(p.Sprintf(msgPeriod, period.Period, period.ExpectedIncome,
			period.ExpectedExpenses, period.CumulativeBalance, period.Confidence))
	}
	if len(summary.Insights) > 0 {
		body.WriteString("\n")
		for _, insight := range summary.Insights {
			body.WriteString("- " + insight + "\n")
		}
	}
	body.WriteString(p.Sprintf(msgSignoff))

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{sub.Email}
	e.Subject = p.Sprintf(msgSubject, name, level)
	e.Text = []byte(body.String())
	return e
}

func (s *Sender) sendSMTP(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}

func riskName(level models.RiskLevel, tag language.Tag) string {
	if names, ok := riskNames[tag]; ok {
		if name, ok := names[level]; ok {
			return name
		}
	}
	return string(level)
}
