package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/comalice/observerx"
)

// turbulent drives one subject through two updates with a removal in between.
func turbulent() {
	observer1 := observerx.NewConcreteObserver("INITIALIZE-1")
	observer2 := observerx.NewConcreteObserver("INITIALIZE-2")

	fmt.Println("STATE OF OBSERVER1:", observer1.ObserverState())
	fmt.Println("STATE OF OBSERVER2:", observer2.ObserverState())

	var subject observerx.Subject = observerx.NewConcreteSubject()
	subject.AddObserver(observer1)
	subject.AddObserver(observer2)

	subject.SetSubjectState("HAPPY")
	subject.NotifyObservers()

	fmt.Println("STATE OF OBSERVER1:", observer1.ObserverState())
	fmt.Println("STATE OF OBSERVER2:", observer2.ObserverState())
	fmt.Println()

	if err := subject.RemoveObserver(1); err != nil {
		log.Fatalf("remove observer: %+v", err)
	}
	subject.SetSubjectState("SURPRISED")
	subject.NotifyObservers()

	fmt.Println("STATE OF OBSERVER1:", observer1.ObserverState())
	fmt.Println("STATE OF OBSERVER2:", observer2.ObserverState())
}

func main() {
	turbulent()
}
