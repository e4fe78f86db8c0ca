package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/user/cinecritic/internal/config"
	"github.com/user/cinecritic/internal/handler"
	"github.com/user/cinecritic/internal/logger"
	"github.com/user/cinecritic/internal/middleware"
	"github.com/user/cinecritic/internal/repository"
	"github.com/user/cinecritic/internal/router"
	"github.com/user/cinecritic/internal/service"
	"github.com/user/cinecritic/internal/session"
)

func main() {
	// 加载环境变量
	envErr := godotenv.Load()

	// 加载配置
	cfg := config.Load()

	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	if envErr != nil {
		log.Info("未找到 .env 文件，使用系统环境变量")
	}

	// 初始化数据库
	db, err := repository.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("数据库连接失败", "error", err)
	}

	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	// 初始化仓库
	repos := repository.NewRepositories(db)

	// 会话只保存在进程内，重启后需要重新登录
	sessions := session.NewMemoryStore(session.WithTTL(cfg.SessionTTL))

	services := service.New(service.Deps{
		Users:          repos.User,
		Movies:         repos.Movie,
		Reviews:        repos.Review,
		SuperReviews:   repos.SuperReview,
		Sessions:       sessions,
		Hasher:         service.NewBcryptHasher(0),
		Logger:         log,
		PosterMaxBytes: cfg.PosterMaxBytes,
	})

	// 创建初始管理员
	if cfg.AdminEmail != "" {
		admin, err := services.User.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Fatalw("初始化管理员失败", "error", err)
		}
		log.Infow("管理员已就绪", "user_id", admin.ID, "email", admin.Email)
	}

	// 初始化 Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 限制 multipart 在内存中的大小
	r.MaxMultipartMemory = cfg.PosterMaxBytes + 1<<20

	// 中间件
	r.Use(middleware.Logger(log))
	r.Use(middleware.Security())
	r.Use(middleware.CORS())

	// 初始化 Handler
	h := handler.NewHandler(services, cfg, log)

	// 注册路由
	router.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// 收到 SIGINT / SIGTERM 后优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("服务器启动于 http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("正在关闭服务器...")

		// 5 秒超时上下文用于关闭过程
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Errorw("服务器异常退出", "error", err)
		os.Exit(1)
	}
	log.Info("服务器已退出")
}
