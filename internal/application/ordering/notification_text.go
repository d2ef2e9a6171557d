package ordering

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/domain/ordering"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// moneyPrinter formatea montos con separadores del locale configurado sin pasar por float.
type moneyPrinter struct {
	p      *message.Printer
	symbol string
	sep    string
}

func newMoneyPrinter(locale, symbol string) moneyPrinter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	p := message.NewPrinter(tag)
	// "0,5" -> ","
	sep := strings.Trim(p.Sprintf("%v", number.Decimal(0.5, number.Scale(1))), "05")
	if sep == "" {
		sep = "."
	}
	return moneyPrinter{p: p, symbol: symbol, sep: sep}
}

// Format agrupa la parte entera con el locale y toma los centavos de StringFixed(2).
func (m moneyPrinter) Format(v decimal.Decimal) string {
	fixed := v.StringFixed(2)
	intPart, cents, _ := strings.Cut(fixed, ".")
	units, err := strconv.ParseInt(strings.TrimPrefix(intPart, "-"), 10, 64)
	if err != nil {
		return m.symbol + " " + fixed
	}
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
	}
	return m.symbol + " " + sign + m.p.Sprintf("%v", number.Decimal(units)) + m.sep + cents
}

// buildNotifications arma un aviso por usuario con número, canal, cliente, forma de pago y total.
func (uc *CreateOrderUseCase) buildNotifications(
	users []*entity.User,
	order *entity.Order,
	customerName, paymentName string,
	now time.Time,
) []*entity.Notification {
	if len(users) == 0 {
		return nil
	}
	title := "Nuevo pedido " + order.Number
	msg := strings.Join([]string{
		"Pedido " + order.Number,
		ordering.ChannelLabel(order.Type),
		"Cliente: " + customerName,
		"Pago: " + paymentName,
		"Total: " + uc.money.Format(order.TotalValue),
	}, " | ")
	url := strings.TrimRight(uc.cfg.PublicURL, "/") + "/" + order.ID

	out := make([]*entity.Notification, 0, len(users))
	for _, u := range users {
		out = append(out, &entity.Notification{
			ID:        uuid.New().String(),
			CompanyID: order.CompanyID,
			UserID:    u.ID,
			Title:     title,
			Message:   msg,
			Read:      false,
			URL:       url,
			CreatedAt: now,
		})
	}
	return out
}
