package constants

import "time"

const (
	CacheKeyAnnouncement           = "board:announcement:%s"
	CacheKeyAnnouncementList       = "board:announcements:list:%d" // 按版本号区分
	CacheKeyAnnouncementGeneration = "board:announcements:generation"
)

const (
	CacheExpireAnnouncement          = 10 * time.Minute
	CacheExpireAnnouncementList      = 1 * time.Minute
	CacheExpireAnnouncementTombstone = CacheExpireAnnouncement // 不短于单条缓存，避免删除前读出的旧值写回
)

// CacheTombstone 标记已删除的公告
const CacheTombstone = "deleted"
