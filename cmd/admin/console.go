package main

import "fmt"

// consoleNotifier imprime las notificaciones de la aplicación en la terminal;
// es el equivalente de los toasts del panel.
type consoleNotifier struct{}

func (consoleNotifier) Success(title, detail string) {
	fmt.Printf("✔ %s — %s\n", title, detail)
}

func (consoleNotifier) Error(title, detail string) {
	fmt.Printf("✘ %s — %s\n", title, detail)
}

// consoleNavigator registra la "pantalla" actual. En la terminal la
// navegación es informativa; el guard decide qué comandos pueden correr.
type consoleNavigator struct {
	route string
}

func (n *consoleNavigator) Go(route string) {
	n.route = route
}

func (n *consoleNavigator) Replace(route string) {
	n.route = route
}
