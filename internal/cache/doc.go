// Package cache provides the bounded LRU memo that keeps resolved glyph
// outlines between registrations.
//
//	memo := cache.New[outlineKey, outline.Shape](512)
//	shape, err := memo.GetOrCreate(key, func() (outline.Shape, error) {
//		return resolve(face, gid)
//	})
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
