// internal/push/hub.go
package push

import (
	"context"
	"sync"

	"forno/internal/pkg/logger"
)

// Hub 维护所有活跃的连接，按用户 ID 索引。
// 同一个用户重复连接时，新连接顶掉旧连接。
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	lock       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run 处理连接的注册与注销，直到 ctx 被取消。
// 返回前关闭 done，让仍在注册/注销路上的连接不会卡在无人接收的 channel 上。
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.lock.Lock()
			if old, ok := h.clients[client.userID]; ok {
				close(old.send)
			}
			h.clients[client.userID] = client
			h.lock.Unlock()
			logger.Logger().Info().Str("user_id", client.userID).Msg("client registered")
		case client := <-h.unregister:
			h.lock.Lock()
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.send)
			}
			h.lock.Unlock()
			logger.Logger().Info().Str("user_id", client.userID).Msg("client unregistered")
		case <-ctx.Done():
			return
		}
	}
}

// add 注册一个连接。Run 已退出时直接返回。
func (h *Hub) add(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// drop 注销一个连接。Run 已退出时直接返回。
func (h *Hub) drop(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Deliver 把消息投递给指定用户的连接。
// 用户不在线或发送缓冲已满时返回 false。
func (h *Hub) Deliver(userID string, message []byte) bool {
	h.lock.RLock()
	client, ok := h.clients[userID]
	h.lock.RUnlock()
	if !ok {
		return false
	}
	select {
	case client.send <- message:
		return true
	default:
		return false
	}
}
