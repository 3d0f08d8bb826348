// Interactive order book demo. Seeds both sides, then drives the engine
// from the keyboard while rendering the ladder and the trade tape.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fenrir/domain/book"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	askStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	bidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46"))

	spreadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	tapeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

const (
	ladderLevels = 8
	tapeLength   = 12
	basePrice    = 10050
)

type model struct {
	book    *book.Book
	rng     *rand.Rand
	resting []uint64 // ids we placed that may still rest
	status  string
}

func now() uint64 {
	return uint64(time.Now().UnixNano())
}

func initialModel() model {
	m := model{
		book: book.New(),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	// seed both sides the way the classic demo script does
	m.place(10050, 100, book.Buy)
	m.place(10048, 200, book.Buy)
	m.place(10045, 150, book.Buy)
	m.place(10055, 120, book.Sell)
	m.place(10058, 180, book.Sell)
	m.place(10060, 100, book.Sell)

	m.status = "seeded 3 bids and 3 asks"
	return m
}

func (m *model) place(price, qty uint32, side book.Side) uint64 {
	id := m.book.Submit(price, qty, side, now())
	if _, resting := m.book.Order(id); resting {
		m.resting = append(m.resting, id)
	}
	return id
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	qty := uint32(m.rng.Intn(200)) + 10

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "b": // passive bid at or up to two ticks under the best
		price := m.book.BestBid()
		if price == 0 {
			price = basePrice
		} else if price > 1 {
			price -= uint32(m.rng.Intn(3))
		}
		id := m.place(price, qty, book.Buy)
		m.status = fmt.Sprintf("bid #%d %d x %d", id, price, qty)

	case "a": // passive ask at or up to two ticks over the best
		price := m.book.BestAsk()
		if price == 0 {
			price = basePrice + 5
		} else {
			price += uint32(m.rng.Intn(3))
		}
		id := m.place(price, qty, book.Sell)
		m.status = fmt.Sprintf("ask #%d %d x %d", id, price, qty)

	case "B": // aggressive buy through the spread
		ask := m.book.BestAsk()
		if ask == 0 {
			m.status = "no asks to lift"
			break
		}
		before := m.book.TradeCount()
		id := m.place(ask+2, qty, book.Buy)
		m.status = fmt.Sprintf("buy #%d lifted %d trade(s)", id, m.book.TradeCount()-before)

	case "A": // aggressive sell through the spread
		bid := m.book.BestBid()
		if bid == 0 {
			m.status = "no bids to hit"
			break
		}
		before := m.book.TradeCount()
		id := m.place(bid-2, qty, book.Sell)
		m.status = fmt.Sprintf("sell #%d hit %d trade(s)", id, m.book.TradeCount()-before)

	case "c": // cancel the most recent resting order
		cancelled := false
		for len(m.resting) > 0 && !cancelled {
			id := m.resting[len(m.resting)-1]
			m.resting = m.resting[:len(m.resting)-1]
			if m.book.Cancel(id) {
				m.status = fmt.Sprintf("cancelled #%d", id)
				cancelled = true
			}
		}
		if !cancelled {
			m.status = "nothing to cancel"
		}

	case "m": // halve the most recent resting order
		m.status = "nothing to modify"
		for i := len(m.resting) - 1; i >= 0; i-- {
			o, ok := m.book.Order(m.resting[i])
			if !ok {
				continue
			}
			newQty := o.Quantity / 2
			if newQty == 0 {
				newQty = 1
			}
			if m.book.Modify(o.ID, newQty) {
				m.status = fmt.Sprintf("modified #%d to qty %d", o.ID, newQty)
			}
			break
		}
	}

	return m, nil
}

func (m model) View() string {
	var ladder strings.Builder

	asks := m.book.Depth(book.Sell, ladderLevels)
	for i := len(asks) - 1; i >= 0; i-- {
		ladder.WriteString(askStyle.Render(
			fmt.Sprintf("%8d  %8d  (%d)", asks[i].Price, asks[i].Quantity, asks[i].Orders)))
		ladder.WriteByte('\n')
	}

	spread := m.book.Spread()
	if spread < 0 {
		ladder.WriteString(spreadStyle.Render("   ---- spread: n/a ----"))
	} else {
		ladder.WriteString(spreadStyle.Render(fmt.Sprintf("   ---- spread: %d ----", spread)))
	}
	ladder.WriteByte('\n')

	for _, lvl := range m.book.Depth(book.Buy, ladderLevels) {
		ladder.WriteString(bidStyle.Render(
			fmt.Sprintf("%8d  %8d  (%d)", lvl.Price, lvl.Quantity, lvl.Orders)))
		ladder.WriteByte('\n')
	}

	var tape strings.Builder
	trades := m.book.Trades()
	start := 0
	if len(trades) > tapeLength {
		start = len(trades) - tapeLength
	}
	for _, tr := range trades[start:] {
		tape.WriteString(tapeStyle.Render(
			fmt.Sprintf("#%d x #%d  %d @ %d", tr.BuyOrderID, tr.SellOrderID, tr.Quantity, tr.Price)))
		tape.WriteByte('\n')
	}
	if len(trades) == 0 {
		tape.WriteString(helpStyle.Render("no trades yet"))
		tape.WriteByte('\n')
	}

	left := panelStyle.Render(
		titleStyle.Render(" ORDER BOOK ") + "\n\n" + ladder.String())
	right := panelStyle.Render(
		titleStyle.Render(" TRADES ") + "\n\n" + tape.String())

	stats := statusStyle.Render(fmt.Sprintf(
		" bid %d | ask %d | levels %d/%d | resting %d | trades %d | %s ",
		m.book.BestBid(), m.book.BestAsk(),
		m.book.BidDepth(), m.book.AskDepth(),
		m.book.OrderCount(), m.book.TradeCount(),
		m.status,
	))

	help := helpStyle.Render(
		"b/a passive bid/ask  B/A cross the spread  c cancel  m modify  q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right),
		stats,
		help,
	)
}

func main() {
	if _, err := tea.NewProgram(initialModel()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
		os.Exit(1)
	}
}
