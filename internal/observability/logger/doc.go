// Package logger provee un logger Zap singleton con scoping por contexto.
//
//   - Singleton: una sola instancia inicializada con Init().
//   - Context scoping: cada request lleva su logger con request_id, método,
//     path y, una vez resuelto, tenant_id / tenant_slug.
//   - Entornos: "dev" usa consola con colores, "prod" usa JSON.
//
// Inicialización (una vez en cmd):
//
//	logger.Init(logger.Config{Env: cfg.Log.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
// En middlewares / handlers:
//
//	logger.From(ctx).Warn("gate denied", logger.Gate("subscription"), logger.Reason(d.Reason))
package logger
