// Command server exposes the Planner Facade over HTTP: a thin gin driver
// sitting alongside the interactive CLI, built on the same facade.
package main

import (
	"log"
	"math"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"multimodal-router/bussystem"
	"multimodal-router/routing"
	"multimodal-router/streetmap"
)

type routeRequest struct {
	Src  uint64 `json:"src" binding:"required"`
	Dest uint64 `json:"dest" binding:"required"`
}

func main() {
	_ = godotenv.Load()

	facade, err := buildFacade()
	if err != nil {
		log.Fatalf("Failed to build planner: %v", err)
	}

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"*"}
	r.Use(cors.New(config))

	r.POST("/route/shortest", handleShortest(facade))
	r.POST("/route/fastest", handleFastest(facade))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	log.Println("Multimodal route server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func buildFacade() (*routing.PlannerFacade, error) {
	mapPath := envOr("STREET_MAP_PATH", "streetmap.osm")
	stopsPath := envOr("BUS_STOPS_PATH", "stops.csv")
	routesPath := envOr("BUS_ROUTES_PATH", "routes.csv")
	cachePath := os.Getenv("GRAPH_CACHE_PATH")

	mf, err := os.Open(mapPath)
	if err != nil {
		return nil, err
	}
	defer mf.Close()
	sm, err := streetmap.LoadOSMXML(mf)
	if err != nil {
		return nil, err
	}

	var cachedGraph *routing.Graph
	if cachePath != "" {
		if g, err := routing.LoadGraphCache(cachePath); err == nil {
			cachedGraph = g
		} else {
			log.Printf("Graph cache %s unusable, rebuilding: %v", cachePath, err)
		}
	}

	sf, err := os.Open(stopsPath)
	if err != nil {
		return nil, err
	}
	defer sf.Close()
	bs, err := bussystem.LoadStopsDSV(sf, ',')
	if err != nil {
		return nil, err
	}

	rf, err := os.Open(routesPath)
	if err != nil {
		return nil, err
	}
	defer rf.Close()
	if err := bussystem.LoadRoutesDSV(rf, ',', bs); err != nil {
		return nil, err
	}

	cfg := routing.NewConfiguration(sm, bs)
	if cachedGraph != nil && cachedGraph.NodeCount() == sm.NodeCount() {
		return routing.NewPlannerFacadeWithGraph(cfg, cachedGraph), nil
	}
	return routing.NewPlannerFacade(cfg), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func handleShortest(facade *routing.PlannerFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req routeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		miles, path := facade.FindShortestPath(streetmap.NodeID(req.Src), streetmap.NodeID(req.Dest))
		if math.IsInf(miles, 1) {
			c.JSON(http.StatusOK, gin.H{"reachable": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"reachable": true,
			"miles":     miles,
			"path":      path,
		})
	}
}

func handleFastest(facade *routing.PlannerFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req routeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		hours, trip := facade.FindFastestPath(streetmap.NodeID(req.Src), streetmap.NodeID(req.Dest))
		if math.IsInf(hours, 1) {
			c.JSON(http.StatusOK, gin.H{"reachable": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"reachable": true,
			"hours":     hours,
			"trip":      trip,
			"narrative": facade.GetPathDescription(trip),
		})
	}
}
