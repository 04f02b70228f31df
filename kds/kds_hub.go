package kds

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/models"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
	"github.com/gorilla/websocket"
)

// Event types
const (
	EventBookingUpdate   = "booking_update"
	EventOrderUpdate     = "order_update"
	EventTableUpdate     = "table_update"
	EventNotification    = "notification"
	EventStaffNotif      = "staff_notification"
	EventDashboardUpdate = "dashboard_update"
)

// writeWait membatasi lama satu layar boleh menahan broadcast
const writeWait = 5 * time.Second

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// KDSHub menampung semua client KDS (chef, waiter, admin)
type KDSHub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var kdsHub = KDSHub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	kdsHub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	delete(kdsHub.clients, conn)
	conn.Close()
}

// ClientCount returns the number of connected screens.
func ClientCount() int {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	return len(kdsHub.clients)
}

func BroadcastBookingUpdate(booking models.Booking) {
	broadcast(Message{Event: EventBookingUpdate, Data: booking}, nil)
}

func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order}, nil)
}

func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{Event: EventTableUpdate, Data: table}, nil)
}

// BroadcastNotification mengirim notifikasi ke layar yang relevan dengan channel-nya:
// kitchen -> chef, admin -> admin, customer -> waiter (untuk diteruskan ke meja).
func BroadcastNotification(n models.Notification) {
	roles := map[string]bool{"admin": true}
	switch n.Channel {
	case models.ChannelKitchen:
		roles["chef"] = true
	case models.ChannelCustomer:
		roles["waiter"] = true
	}
	broadcast(Message{Event: EventNotification, Data: n}, roles)
}

func BroadcastStaffNotification(message string) {
	broadcast(Message{Event: EventStaffNotif, Data: message}, nil)
}

func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{Event: EventDashboardUpdate, Data: data}, nil)
}

// broadcast -> kirim ke semua client, atau hanya ke role tertentu jika roles != nil
func broadcast(msg Message, roles map[string]bool) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()

	if len(kdsHub.clients) == 0 {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling KDS message: %v", err)
		return
	}

	for conn, role := range kdsHub.clients {
		if roles != nil && !roles[role] {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			// layar lambat atau putus dilepas supaya tidak menahan layar lain
			utils.ErrorLogger.Printf("Error sending %s to %s client: %v", msg.Event, role, err)
			delete(kdsHub.clients, conn)
			conn.Close()
		}
	}
}
