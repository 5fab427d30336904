// admin es el panel de administración de la cadena de supermercados en modo
// terminal: construye la sesión contra el backend REST y expone las pantallas
// como subcomandos.
//
// Uso:
//
//	admin login <email> <password> [remember]
//	admin logout
//	admin me
//	admin products list [búsqueda]
//	admin products delete <id>
//	admin categories list
//	admin categories tree
//	admin categories create <título> <nivel> [padre]
//	admin brands list
//	admin staff list
//	admin export-catalog <salida.pdf>
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/jhoicas/supermercado-admin/internal/application/dto"
	"github.com/jhoicas/supermercado-admin/internal/application/service"
	"github.com/jhoicas/supermercado-admin/internal/application/session"
	"github.com/jhoicas/supermercado-admin/internal/domain/entity"
	"github.com/jhoicas/supermercado-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/supermercado-admin/internal/infrastructure/rest"
	"github.com/jhoicas/supermercado-admin/internal/infrastructure/storage"
	"github.com/jhoicas/supermercado-admin/internal/interfaces/guard"
	"github.com/jhoicas/supermercado-admin/pkg/config"
	"github.com/jhoicas/supermercado-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Debug().Str("base_url", cfg.API.BaseURL).Msg("iniciando panel de administración")

	store, err := storage.New(cfg.Session)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento de sesión")
	}

	api := rest.NewClient(cfg.API, store, log)
	notifier := &consoleNotifier{}
	nav := &consoleNavigator{}
	sess := session.New(api, store, notifier, nav, log)
	sess.Restore()
	defer sess.Close()

	g := guard.New(sess, nav)

	app := &application{
		ctx:        context.Background(),
		cfg:        cfg,
		sess:       sess,
		guard:      g,
		products:   service.NewProductService(api),
		categories: service.NewCategoryService(api),
		brands:     service.NewBrandService(api),
		staff:      service.NewStaffService(api),
	}

	runErr := app.run(os.Args[1:])

	// En nivel debug se vuelca el registro de métricas al salir, con el
	// conteo de peticiones y resultados del comando recién ejecutado.
	if cfg.App.LogLevel == "debug" || cfg.App.LogLevel == "trace" {
		if err := dumpMetrics(os.Stderr); err != nil {
			log.Warn().Err(err).Msg("volcar métricas")
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}

// dumpMetrics escribe las familias del registro por defecto en formato de
// exposición de texto de Prometheus.
func dumpMetrics(w io.Writer) error {
	fams, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, fam := range fams {
		if err := enc.Encode(fam); err != nil {
			return err
		}
	}
	return nil
}

type application struct {
	ctx        context.Context
	cfg        *config.Config
	sess       *session.Store
	guard      *guard.Guard
	products   *service.ProductService
	categories *service.CategoryService
	brands     *service.BrandService
	staff      *service.StaffService
}

func (a *application) run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("falta el subcomando (login, logout, me, products, categories, brands, staff, export-catalog)")
	}

	switch args[0] {
	case "login":
		if len(args) < 3 {
			return fmt.Errorf("uso: admin login <email> <password> [remember]")
		}
		remember := len(args) > 3 && args[3] == "remember"
		return a.sess.Login(a.ctx, args[1], args[2], remember)

	case "logout":
		a.sess.Logout()
		return nil

	case "me":
		return a.protected(func() error {
			u, err := a.sess.Me(a.ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s> — %s\n", u.Name, u.Email, u.Role)
			if u.Branch != nil {
				fmt.Printf("Sucursal: %s\n", u.Branch.Title)
			}
			return nil
		})

	case "products":
		return a.productsCmd(args[1:])
	case "categories":
		return a.categoriesCmd(args[1:])
	case "brands":
		return a.brandsCmd(args[1:])
	case "staff":
		return a.staffCmd(args[1:])
	case "export-catalog":
		if len(args) < 2 {
			return fmt.Errorf("uso: admin export-catalog <salida.pdf>")
		}
		return a.exportCatalog(args[1])
	default:
		return fmt.Errorf("subcomando desconocido %q", args[0])
	}
}

// protected ejecuta fn solo si el guard permite renderizar la pantalla.
func (a *application) protected(fn func() error) error {
	switch a.guard.Evaluate() {
	case guard.Render:
		return fn()
	case guard.ShowLoading:
		return fmt.Errorf("la sesión aún se está restaurando")
	default:
		return fmt.Errorf("sesión requerida: inicie sesión con 'admin login'")
	}
}

func (a *application) productsCmd(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: admin products <list|delete>")
	}
	switch args[0] {
	case "list":
		return a.protected(func() error {
			list, err := a.products.List(a.ctx, dto.ListParams{})
			if err != nil {
				return err
			}
			items := list.Products
			if len(args) > 1 {
				items = a.products.Filter(items, args[1])
			}
			for _, p := range items {
				fmt.Printf("%6d  %-14s  %s\n", p.ID, p.UICode, p.Title)
			}
			fmt.Printf("%d productos\n", len(items))
			return nil
		})
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("uso: admin products delete <id>")
		}
		id, _ := strconv.Atoi(args[1])
		return a.protected(func() error {
			msg, err := a.products.Delete(a.ctx, id)
			if err != nil {
				return err
			}
			if msg == "" {
				msg = "producto eliminado"
			}
			fmt.Println(msg)
			return nil
		})
	default:
		return fmt.Errorf("uso: admin products <list|delete>")
	}
}

func (a *application) categoriesCmd(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("uso: admin categories <list|tree|create>")
	}
	switch args[0] {
	case "list":
		return a.protected(func() error {
			list, err := a.categories.List(a.ctx, dto.ListParams{})
			if err != nil {
				return err
			}
			for _, c := range list.Categories {
				fmt.Printf("%6d  nivel %d  %s\n", c.ID, c.Level, c.Title)
			}
			return nil
		})
	case "tree":
		return a.protected(func() error {
			tree, err := a.categories.Tree(a.ctx)
			if err != nil {
				return err
			}
			printTree(tree, 0)
			return nil
		})
	case "create":
		if len(args) < 3 {
			return fmt.Errorf("uso: admin categories create <título> <nivel> [padre]")
		}
		level, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("nivel inválido %q", args[2])
		}
		form := dto.CategoryForm{Title: args[1], Level: level}
		if len(args) > 3 {
			parent, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("padre inválido %q", args[3])
			}
			form.Parent = &parent
		}
		return a.protected(func() error {
			cat, err := a.categories.Create(a.ctx, form)
			if err != nil {
				return err
			}
			fmt.Printf("categoría creada: %d  %s\n", cat.ID, cat.Title)
			return nil
		})
	default:
		return fmt.Errorf("uso: admin categories <list|tree|create>")
	}
}

func (a *application) brandsCmd(args []string) error {
	if len(args) == 0 || args[0] != "list" {
		return fmt.Errorf("uso: admin brands list [búsqueda]")
	}
	params := dto.ListParams{}
	if len(args) > 1 {
		params.Search = args[1]
	}
	return a.protected(func() error {
		list, err := a.brands.List(a.ctx, params)
		if err != nil {
			return err
		}
		for _, b := range list.Brands {
			fmt.Printf("%6d  %s\n", b.ID, b.Title)
		}
		return nil
	})
}

func (a *application) staffCmd(args []string) error {
	if len(args) == 0 || args[0] != "list" {
		return fmt.Errorf("uso: admin staff list")
	}
	return a.protected(func() error {
		list, err := a.staff.List(a.ctx, dto.ListParams{})
		if err != nil {
			return err
		}
		for _, st := range list.Staff {
			fmt.Printf("%6d  %-24s  %s\n", st.ID, st.Name, st.Role)
		}
		return nil
	})
}

func (a *application) exportCatalog(out string) error {
	return a.protected(func() error {
		list, err := a.products.List(a.ctx, dto.ListParams{})
		if err != nil {
			return err
		}
		gen := pdf.NewCatalogReportGenerator(a.cfg.App.Name)
		doc, err := gen.Generate(list.Products, time.Now())
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, doc, 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", out, err)
		}
		fmt.Printf("Catálogo exportado a %s (%d productos)\n", out, len(list.Products))
		return nil
	})
}

func printTree(cats []entity.Category, depth int) {
	for _, c := range cats {
		fmt.Printf("%*s%s (id %d)\n", depth*2, "", c.Title, c.ID)
		printTree(c.Children, depth+1)
	}
}
