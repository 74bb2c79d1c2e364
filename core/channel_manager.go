package core

import (
	"strings"
	"sync"

	"chatapi/iface"
	"chatapi/logger"
)

type ChannelManager struct {
	channels sync.Map
}

func NewChannels() iface.IChannelMap {
	return &ChannelManager{}
}

func (cm *ChannelManager) Add(channel iface.IChannel) {
	cm.checkID(channel.ID())
	cm.channels.Store(channel.ID(), channel)
}

func (cm *ChannelManager) Remove(id string) {
	cm.checkID(id)
	cm.channels.Delete(id)
}

func (cm *ChannelManager) Get(id string) (iface.IChannel, bool) {
	channel, ok := cm.channels.Load(id)
	if !ok {
		return nil, ok
	}

	if ch, ok := channel.(iface.IChannel); ok {
		return ch, ok
	}
	return nil, false
}

func (cm *ChannelManager) checkID(channel string) {
	if len(channel) == 0 {
		logger.WithFields(logger.Fields{
			"module": "ChannelManager",
		}).Error("channel id is required")
	}
}

// All return channels
func (cm *ChannelManager) All() []iface.IChannel {
	arr := make([]iface.IChannel, 0)
	cm.channels.Range(func(key, val interface{}) bool {
		arr = append(arr, val.(iface.IChannel))
		return true
	})
	return arr
}

func (cm *ChannelManager) Find(prefix string) []iface.IChannel {
	arr := make([]iface.IChannel, 0)
	cm.channels.Range(func(key, val interface{}) bool {
		if strings.HasPrefix(key.(string), prefix) {
			arr = append(arr, val.(iface.IChannel))
		}
		return true
	})
	return arr
}
