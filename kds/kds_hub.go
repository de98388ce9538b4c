package kds

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/tab-pos/models"
	"github.com/yeremiapane/tab-pos/services"
	"github.com/yeremiapane/tab-pos/utils"
)

// Event types
const (
	EventTabsUpdate      = "tabs_update"
	EventSettlement      = "settlement"
	EventStaffNotif      = "staff_notification"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// SettlementNotice is the board-facing summary of a finalized checkout.
type SettlementNotice struct {
	TabID   string `json:"tab_id,omitempty"`
	Label   string `json:"label"`
	Method  string `json:"method"`
	Total   string `json:"total"`
	Partial bool   `json:"partial"`
}

// KDSHub holds every connected board screen and its role.
type KDSHub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

var kdsHub = KDSHub{
	clients: make(map[*websocket.Conn]string),
}

func RegisterClient(conn *websocket.Conn, role string) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	kdsHub.clients[conn] = role
}

func UnregisterClient(conn *websocket.Conn) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	delete(kdsHub.clients, conn)
	conn.Close()
}

func ClientCount() int {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	return len(kdsHub.clients)
}

func BroadcastTabsUpdate(tabs []models.Tab) {
	broadcast(Message{
		Event: EventTabsUpdate,
		Data:  tabs,
	})
}

func BroadcastSettlement(s services.Settlement) {
	label := "Balcão"
	if s.Tab != nil {
		label = s.Tab.Label
	}
	broadcast(Message{
		Event: EventSettlement,
		Data: SettlementNotice{
			TabID:   s.TabID,
			Label:   label,
			Method:  s.Revenue.PaymentMethodName,
			Total:   utils.FormatCurrency(s.Total),
			Partial: s.Partial,
		},
	})
}

func BroadcastStaffNotification(message string) {
	broadcast(Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{
		Event: EventDashboardUpdate,
		Data:  data,
	})
}

// Board plugs the hub into the engine as a Notifier. With a Monitor, every settlement
// also pushes the refreshed dashboard counters; register the monitor before the board.
type Board struct {
	Monitor *services.SettlementMonitor
}

func (b Board) TabsChanged(tabs []models.Tab) { BroadcastTabsUpdate(tabs) }

func (b Board) Settled(s services.Settlement) {
	BroadcastSettlement(s)
	if b.Monitor != nil {
		BroadcastDashboardUpdate(b.Monitor.GetMetrics())
	}
}

func broadcast(msg Message) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("error marshaling message")
		return
	}

	for conn, role := range kdsHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{"role": role, "event": msg.Event}).
				WithError(err).Error("error sending message to client")
		}
	}
}
