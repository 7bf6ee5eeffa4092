package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Counselor message types
const (
	MsgCrisisAlert    MessageType = "crisis_alert"
	MsgStudentOnline  MessageType = "student_online"
	MsgStudentOffline MessageType = "student_offline"
)

// Student message types
const (
	MsgAnnouncement MessageType = "announcement"
	MsgChatAck      MessageType = "chat_ack"
	MsgError        MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections per college
type Hub struct {
	// College -> connections
	counselorConns map[string]map[*Connection]bool
	studentConns   map[string]map[string]*Connection // collegeID -> studentID -> conn

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection
type Connection struct {
	CollegeID   string
	StudentID   string // Empty for counselor connections
	IsCounselor bool
	Send        chan []byte
	Hub         *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	CollegeID    string
	ToCounselors bool
	ToStudent    string // Specific student ID, ignored when ToCounselors is set
	Message      *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		counselorConns: make(map[string]map[*Connection]bool),
		studentConns:   make(map[string]map[string]*Connection),
		register:       make(chan *Connection),
		unregister:     make(chan *Connection),
		broadcast:      make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if conn.IsCounselor {
				if h.counselorConns[conn.CollegeID] == nil {
					h.counselorConns[conn.CollegeID] = make(map[*Connection]bool)
				}
				h.counselorConns[conn.CollegeID][conn] = true
				log.Printf("Counselor connected for college %s", conn.CollegeID)
			} else {
				if h.studentConns[conn.CollegeID] == nil {
					h.studentConns[conn.CollegeID] = make(map[string]*Connection)
				}
				h.studentConns[conn.CollegeID][conn.StudentID] = conn
				log.Printf("Student %s connected for college %s", conn.StudentID, conn.CollegeID)

				h.notifyCounselors(conn.CollegeID, MsgStudentOnline, conn.StudentID)
			}
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if conn.IsCounselor {
				if counselors, ok := h.counselorConns[conn.CollegeID]; ok && counselors[conn] {
					delete(counselors, conn)
					close(conn.Send)
					log.Printf("Counselor disconnected from college %s", conn.CollegeID)
				}
			} else {
				if students, ok := h.studentConns[conn.CollegeID]; ok {
					if existing, ok := students[conn.StudentID]; ok && existing == conn {
						delete(students, conn.StudentID)
						close(conn.Send)
						log.Printf("Student %s disconnected from college %s", conn.StudentID, conn.CollegeID)

						h.notifyCounselors(conn.CollegeID, MsgStudentOffline, conn.StudentID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.ToCounselors {
				for conn := range h.counselorConns[msg.CollegeID] {
					select {
					case conn.Send <- data:
					default:
						// Drop message if buffer full
					}
				}
			} else if msg.ToStudent != "" {
				if students, ok := h.studentConns[msg.CollegeID]; ok {
					if conn, ok := students[msg.ToStudent]; ok {
						select {
						case conn.Send <- data:
						default:
						}
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToCounselors sends a message to every counselor of a college
// (implements service.Broadcaster)
func (h *Hub) BroadcastToCounselors(collegeID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		CollegeID:    collegeID,
		ToCounselors: true,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// BroadcastToStudent sends a message to one student (implements service.Broadcaster)
func (h *Hub) BroadcastToStudent(collegeID, studentID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		CollegeID: collegeID,
		ToStudent: studentID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

func (h *Hub) notifyCounselors(collegeID string, msgType MessageType, studentID string) {
	data, _ := json.Marshal(&Message{
		Type:    msgType,
		Payload: json.RawMessage(`{"studentId":"` + studentID + `"}`),
	})
	for conn := range h.counselorConns[collegeID] {
		select {
		case conn.Send <- data:
		default:
		}
	}
}
