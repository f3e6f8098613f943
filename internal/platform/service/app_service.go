package service

import (
	"sync"
	"time"
)

// AppService 各模块共享的基础能力。
type AppService struct {
	mu  sync.RWMutex
	now func() time.Time
}

func NewAppService() *AppService {
	return &AppService{now: time.Now}
}

// Now 返回当前时间，测试中可通过 SetClock 固定。
func (s *AppService) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now()
}

func (s *AppService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now == nil {
		now = time.Now
	}
	s.now = now
}
