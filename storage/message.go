package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MessageContent is one archived message of a thread
type MessageContent struct {
	ID        int64  `gorm:"primarykey"`
	ThreadKey string `gorm:"size:128;index"`
	SenderID  string `gorm:"size:64"`
	Recipient string `gorm:"size:64"`
	Body      string `gorm:"size:5000"`
	StickerID string `gorm:"size:64"`
	URL       string `gorm:"size:1000"`
	SendTime  int64  `gorm:"index"`
}

// MessageStore archives messages per thread
type MessageStore interface {
	Insert(msg *MessageContent) error
	// List returns the last limit messages of a thread, oldest first
	List(threadKey string, limit int) ([]MessageContent, error)
}

// ThreadKey is the same for both sides of a one to one thread
func ThreadKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

// InitMysqlDb opens dsn and migrates the archive tables
func InitMysqlDb(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err = db.AutoMigrate(&MessageContent{}); err != nil {
		return nil, errors.Wrap(err, "migrate")
	}
	return db, nil
}

type GormMessageStore struct {
	db *gorm.DB
}

func NewGormMessageStore(db *gorm.DB) MessageStore {
	return &GormMessageStore{db: db}
}

func (s *GormMessageStore) Insert(msg *MessageContent) error {
	return s.db.Create(msg).Error
}

func (s *GormMessageStore) List(threadKey string, limit int) ([]MessageContent, error) {
	var list []MessageContent
	err := s.db.Where("thread_key = ?", threadKey).Order("send_time desc").Limit(limit).Find(&list).Error
	if err != nil {
		return nil, err
	}
	reverse(list)
	return list, nil
}

type MemoryMessageStore struct {
	sync.RWMutex
	threads map[string][]MessageContent
}

func NewMemoryMessageStore() MessageStore {
	return &MemoryMessageStore{
		threads: make(map[string][]MessageContent),
	}
}

func (s *MemoryMessageStore) Insert(msg *MessageContent) error {
	if msg == nil {
		return errors.New("message is nil")
	}
	s.Lock()
	defer s.Unlock()
	list := append(s.threads[msg.ThreadKey], *msg)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].SendTime < list[j].SendTime
	})
	s.threads[msg.ThreadKey] = list
	return nil
}

func (s *MemoryMessageStore) List(threadKey string, limit int) ([]MessageContent, error) {
	s.RLock()
	defer s.RUnlock()
	list := s.threads[threadKey]
	if limit > 0 && len(list) > limit {
		list = list[len(list)-limit:]
	}
	out := make([]MessageContent, len(list))
	copy(out, list)
	return out, nil
}

func reverse(list []MessageContent) {
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
}
