package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"tiendaBack/internal/handlers"
	"tiendaBack/internal/services"
)

const (
	imageCleanerInterval = 24 * time.Hour
	imageCleanerTimeout  = time.Minute
	imageCleanerMinAge   = 24 * time.Hour
)

func startImageCleaner(ctx context.Context, svc *services.ProductService, infoLog, errorLog *log.Logger) {
	if svc == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(imageCleanerInterval)
		defer ticker.Stop()

		run := func() {
			runCtx, cancel := context.WithTimeout(ctx, imageCleanerTimeout)
			defer cancel()

			paths, err := svc.ImagePaths(runCtx)
			if err != nil {
				if errorLog != nil {
					errorLog.Printf("image cleaner: failed to list product images: %v", err)
				}
				return
			}
			referenced := make(map[string]struct{}, len(paths))
			for _, p := range paths {
				referenced[filepath.Base(p)] = struct{}{}
			}

			entries, err := os.ReadDir(handlers.ProductUploadDir)
			if err != nil {
				if !os.IsNotExist(err) && errorLog != nil {
					errorLog.Printf("image cleaner: failed to read upload dir: %v", err)
				}
				return
			}

			removed := 0
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				name := entry.Name()
				if _, ok := referenced[name]; ok {
					continue
				}
				info, err := entry.Info()
				if err != nil {
					continue
				}
				// Fresh files may belong to an upload whose row is not committed yet.
				if time.Since(info.ModTime()) < imageCleanerMinAge {
					continue
				}
				if err := os.Remove(filepath.Join(handlers.ProductUploadDir, name)); err != nil {
					if errorLog != nil {
						errorLog.Printf("image cleaner: failed to remove %s: %v", name, err)
					}
					continue
				}
				removed++
			}
			if removed > 0 && infoLog != nil {
				infoLog.Printf("image cleaner: removed %d orphan product images", removed)
			}
		}

		run()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
