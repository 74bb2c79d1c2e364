package iface

type IChannelMap interface {
	Add(channel IChannel)
	Remove(string)
	Get(string) (IChannel, bool)
	All() []IChannel
	// Find returns the channels whose id starts with prefix
	Find(prefix string) []IChannel
}
