package exam

// Catalog returns the static base question pool. The pool itself is
// read-only at runtime; administrators customize it through the overlay
// mutation log, never by touching these entries. Options are copied too
// so no caller holds a slice into the shipped data.
func Catalog() []Question {
	out := make([]Question, len(baseCatalog))
	copy(out, baseCatalog)
	for i := range out {
		out[i].Options = append([]string(nil), out[i].Options...)
	}
	return out
}

var baseCatalog = []Question{
	{
		ID:            "gen-001",
		Text:          "¿Cuál es el límite de velocidad en zona escolar?",
		Options:       []string{"20 km/h", "30 km/h", "40 km/h", "50 km/h"},
		CorrectAnswer: 0,
		Explanation:   "En zonas escolares el límite es de 20 km/h durante el horario de entrada y salida de alumnos.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "gen-002",
		Text:          "Un semáforo en amarillo indica que el conductor debe:",
		Options:       []string{"Acelerar para cruzar", "Detenerse si es seguro hacerlo", "Tocar el claxon", "Cambiar de carril"},
		CorrectAnswer: 1,
		Explanation:   "La luz amarilla es preventiva: anuncia el cambio a rojo y obliga a detenerse cuando puede hacerse con seguridad.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "gen-003",
		Text:          "¿Qué significa una línea continua amarilla al centro de la carretera?",
		Options:       []string{"Se permite rebasar", "Prohibido rebasar", "Carril exclusivo", "Zona de estacionamiento"},
		CorrectAnswer: 1,
		Explanation:   "La línea continua amarilla prohíbe rebasar invadiendo el carril de sentido contrario.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "gen-004",
		Text:          "El uso del cinturón de seguridad es obligatorio para:",
		Options:       []string{"Solo el conductor", "Conductor y copiloto", "Todos los ocupantes", "Solo en carretera"},
		CorrectAnswer: 2,
		Explanation:   "El reglamento exige cinturón a todos los ocupantes del vehículo, en cualquier vialidad.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "gen-005",
		Text:          "Ante un cruce de peatones sin semáforo, el conductor debe:",
		Options:       []string{"Ceder el paso al peatón", "Tocar el claxon", "Acelerar", "Detenerse solo si hay agente"},
		CorrectAnswer: 0,
		Explanation:   "El peatón siempre tiene preferencia en los pasos marcados.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "gen-006",
		Text:          "¿A qué distancia mínima debe circular detrás de otro vehículo?",
		Options:       []string{"Un metro", "La distancia que recorra en 2 segundos", "Cinco metros fijos", "No hay regla"},
		CorrectAnswer: 1,
		Explanation:   "La regla de los dos segundos garantiza distancia de frenado a cualquier velocidad.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyAvanzado,
	},
	{
		ID:            "gen-007",
		Text:          "Conducir bajo los efectos del alcohol:",
		Options:       []string{"Se permite hasta 0.8 g/L", "Está prohibido y se sanciona", "Solo se sanciona de noche", "Se permite en vías privadas"},
		CorrectAnswer: 1,
		Explanation:   "Manejar en estado de ebriedad es infracción grave y causa de arresto administrativo.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "gen-008",
		Text:          "Las luces intermitentes de emergencia se utilizan para:",
		Options:       []string{"Estacionarse en doble fila", "Avisar de una situación de riesgo o avería", "Agradecer el paso", "Rebasar en curva"},
		CorrectAnswer: 1,
		Explanation:   "Las intermitentes advierten a otros conductores de un peligro o de un vehículo detenido por avería.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "gen-009",
		Text:          "En una glorieta, la preferencia de paso es para:",
		Options:       []string{"Quien entra a mayor velocidad", "Los vehículos que ya circulan dentro", "Los vehículos más grandes", "Quien toque primero el claxon"},
		CorrectAnswer: 1,
		Explanation:   "Quien circula dentro de la glorieta tiene preferencia sobre quien pretende incorporarse.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "gen-010",
		Text:          "¿Qué indica un señalamiento con fondo azul?",
		Options:       []string{"Prohibición", "Información o servicios", "Obra en proceso", "Alto total"},
		CorrectAnswer: 1,
		Explanation:   "Las señales informativas y de servicios usan fondo azul; las restrictivas usan fondo blanco con rojo.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "gen-011",
		Text:          "El uso del teléfono celular al conducir:",
		Options:       []string{"Se permite con una mano", "Se permite solo manos libres", "Se permite en alto total", "No está regulado"},
		CorrectAnswer: 1,
		Explanation:   "Solo se permite mediante sistemas de manos libres; sostener el teléfono es infracción.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "gen-012",
		Text:          "Si un vehículo de emergencia se aproxima con sirena abierta, debe:",
		Options:       []string{"Mantener su carril y velocidad", "Orillarse y ceder el paso", "Seguirlo de cerca", "Detenerse en medio del crucero"},
		CorrectAnswer: 1,
		Explanation:   "Los vehículos de emergencia con señales audibles y visibles tienen preferencia absoluta.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "gen-013",
		Text:          "La distancia de frenado aumenta principalmente cuando:",
		Options:       []string{"El pavimento está mojado", "Hace viento", "Es de día", "El vehículo es nuevo"},
		CorrectAnswer: 0,
		Explanation:   "Sobre pavimento mojado la fricción disminuye y la distancia de frenado puede duplicarse.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyAvanzado,
	},
	{
		ID:            "gen-014",
		Text:          "Una señal octagonal roja significa:",
		Options:       []string{"Ceda el paso", "Alto total", "Curva peligrosa", "Velocidad máxima"},
		CorrectAnswer: 1,
		Explanation:   "El octágono rojo exige detener por completo el vehículo antes de la línea de alto.",
		Category:      CategoryGeneral,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "mot-001",
		Text:          "El casco de motociclista debe:",
		Options:       []string{"Ser opcional en trayectos cortos", "Estar certificado y abrochado", "Usarse solo en carretera", "Cubrir solo la parte superior"},
		CorrectAnswer: 1,
		Explanation:   "El casco certificado y correctamente abrochado es obligatorio para conductor y acompañante.",
		Category:      CategoryMotocicleta,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "mot-002",
		Text:          "Circular entre carriles con motocicleta:",
		Options:       []string{"Está permitido a baja velocidad", "Está prohibido", "Se permite en embotellamiento", "Se permite de noche"},
		CorrectAnswer: 1,
		Explanation:   "El filtrado entre carriles está prohibido por el riesgo de puntos ciegos y aperturas de puertas.",
		Category:      CategoryMotocicleta,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "mot-003",
		Text:          "¿Cuántas personas pueden viajar en una motocicleta de dos plazas?",
		Options:       []string{"Una", "Dos", "Tres si son menores", "Las que quepan"},
		CorrectAnswer: 1,
		Explanation:   "Solo pueden viajar tantas personas como plazas tenga el vehículo, con casco cada una.",
		Category:      CategoryMotocicleta,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "mot-004",
		Text:          "Antes de cambiar de carril en motocicleta debe:",
		Options:       []string{"Confiar en los espejos", "Girar la cabeza para revisar el punto ciego", "Acelerar de golpe", "Tocar el claxon"},
		CorrectAnswer: 1,
		Explanation:   "Los espejos de una motocicleta no cubren el punto ciego; la revisión con giro de cabeza es indispensable.",
		Category:      CategoryMotocicleta,
		Difficulty:    DifficultyAvanzado,
	},
	{
		ID:            "mot-005",
		Text:          "Frenar una motocicleta sobre grava suelta requiere:",
		Options:       []string{"Usar solo el freno delantero", "Frenar gradualmente con ambos frenos", "Frenar a fondo", "Soltar el manubrio"},
		CorrectAnswer: 1,
		Explanation:   "Sobre superficies sueltas el frenado debe ser progresivo y repartido para evitar derrapes.",
		Category:      CategoryMotocicleta,
		Difficulty:    DifficultyAvanzado,
	},
	{
		ID:            "mot-006",
		Text:          "La ropa recomendada para conducir motocicleta es:",
		Options:       []string{"Ligera y clara", "Protectora y visible", "Cualquiera en verano", "Oscura para no distraer"},
		CorrectAnswer: 1,
		Explanation:   "Equipo protector con elementos reflejantes reduce lesiones y mejora la visibilidad ante otros conductores.",
		Category:      CategoryMotocicleta,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "mot-007",
		Text:          "Al circular de noche en motocicleta, la luz baja debe:",
		Options:       []string{"Apagarse en zonas iluminadas", "Permanecer siempre encendida", "Usarse solo en carretera", "Alternarse con las intermitentes"},
		CorrectAnswer: 1,
		Explanation:   "La luz encendida en todo momento hace visible la motocicleta, incluso bajo alumbrado público.",
		Category:      CategoryMotocicleta,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "mot-008",
		Text:          "¿Dónde debe colocarse la motocicleta para espera en un semáforo?",
		Options:       []string{"Sobre el paso peatonal", "Dentro de su carril, detrás de la línea de alto", "Entre dos autos", "Sobre la banqueta"},
		CorrectAnswer: 1,
		Explanation:   "La motocicleta ocupa un carril completo y espera detrás de la línea de alto como cualquier vehículo.",
		Category:      CategoryMotocicleta,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "par-001",
		Text:          "Los menores de 12 años deben viajar:",
		Options:       []string{"En el asiento delantero", "En el asiento trasero con retención adecuada", "En el regazo de un adulto", "Donde prefieran"},
		CorrectAnswer: 1,
		Explanation:   "Los menores viajan atrás, con silla o sistema de retención acorde a su talla y peso.",
		Category:      CategoryParticular,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "par-002",
		Text:          "Al estacionarse en una pendiente descendente, las ruedas delanteras deben:",
		Options:       []string{"Quedar rectas", "Girarse hacia la banqueta", "Girarse hacia el arroyo vehicular", "No importa"},
		CorrectAnswer: 1,
		Explanation:   "Orientar las ruedas hacia la banqueta detiene el vehículo contra ella si falla el freno de mano.",
		Category:      CategoryParticular,
		Difficulty:    DifficultyAvanzado,
	},
	{
		ID:            "par-003",
		Text:          "El claxon debe utilizarse:",
		Options:       []string{"Para saludar", "Solo para prevenir un accidente", "Para apurar el tráfico", "En túneles"},
		CorrectAnswer: 1,
		Explanation:   "El uso del claxon se limita a advertir un riesgo inminente; otro uso es infracción.",
		Category:      CategoryParticular,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "par-004",
		Text:          "Antes de abrir la puerta al bajar del auto debe:",
		Options:       []string{"Abrirla rápido", "Verificar que no se aproximen ciclistas o vehículos", "Encender las luces altas", "Tocar el claxon"},
		CorrectAnswer: 1,
		Explanation:   "Abrir la puerta sin verificar es causa frecuente de accidentes con ciclistas y motociclistas.",
		Category:      CategoryParticular,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "par-005",
		Text:          "Las luces altas deben cambiarse a bajas cuando:",
		Options:       []string{"Se aproxima un vehículo en sentido contrario", "Llueve ligeramente", "Se circula en carretera", "Hay niebla densa"},
		CorrectAnswer: 0,
		Explanation:   "Las luces altas deslumbran al conductor que viene de frente; se baja la intensidad al cruzarse.",
		Category:      CategoryParticular,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "par-006",
		Text:          "Si el vehículo comienza a derrapar, lo correcto es:",
		Options:       []string{"Frenar a fondo", "Girar el volante en dirección del derrape y soltar el acelerador", "Acelerar", "Poner neutral y frenar"},
		CorrectAnswer: 1,
		Explanation:   "Contravolantear suavemente en el sentido del derrape permite recuperar la tracción.",
		Category:      CategoryParticular,
		Difficulty:    DifficultyAvanzado,
	},
	{
		ID:            "par-007",
		Text:          "Estacionarse frente a una rampa para personas con discapacidad:",
		Options:       []string{"Se permite por 5 minutos", "Está prohibido en todo momento", "Se permite de noche", "Se permite con intermitentes"},
		CorrectAnswer: 1,
		Explanation:   "Bloquear rampas y cajones reservados es infracción grave sin excepción de horario.",
		Category:      CategoryParticular,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "par-008",
		Text:          "La verificación del estado de llantas debe incluir:",
		Options:       []string{"Solo la presión", "Presión, dibujo y desgaste", "Únicamente la llanta de refacción", "El color del rin"},
		CorrectAnswer: 1,
		Explanation:   "Presión correcta y profundidad mínima del dibujo garantizan agarre y frenado seguros.",
		Category:      CategoryParticular,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "pub-001",
		Text:          "Un conductor de transporte público debe detenerse a ascenso y descenso:",
		Options:       []string{"En cualquier punto", "Solo en paradas autorizadas", "En segunda fila", "Donde lo pida el pasaje"},
		CorrectAnswer: 1,
		Explanation:   "El ascenso y descenso fuera de parada autorizada pone en riesgo a los pasajeros y es sancionable.",
		Category:      CategoryPublico,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "pub-002",
		Text:          "El número máximo de pasajeros en transporte público lo determina:",
		Options:       []string{"El criterio del conductor", "La tarjeta de circulación y la capacidad de diseño", "La demanda del día", "El horario"},
		CorrectAnswer: 1,
		Explanation:   "Exceder la capacidad de diseño del vehículo compromete el frenado y la estabilidad.",
		Category:      CategoryPublico,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "pub-003",
		Text:          "Las puertas de una unidad de transporte público deben:",
		Options:       []string{"Permanecer abiertas en tramos cortos", "Cerrarse antes de iniciar la marcha", "Abrirse en los altos", "No tiene regulación"},
		CorrectAnswer: 1,
		Explanation:   "Circular con puertas abiertas es causa de caídas de pasajeros y de sanción inmediata.",
		Category:      CategoryPublico,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "pub-004",
		Text:          "La jornada máxima continua de conducción para operadores es relevante porque:",
		Options:       []string{"Reduce el gasto de combustible", "La fatiga aumenta el riesgo de accidente", "Permite más viajes", "Evita multas de tránsito"},
		CorrectAnswer: 1,
		Explanation:   "La fatiga del operador multiplica el tiempo de reacción; por eso se norman descansos obligatorios.",
		Category:      CategoryPublico,
		Difficulty:    DifficultyAvanzado,
	},
	{
		ID:            "pub-005",
		Text:          "Ante un pasajero con movilidad reducida el operador debe:",
		Options:       []string{"Esperar a que aborde y se sujete antes de avanzar", "Avanzar lento", "Pedirle abordar por la puerta trasera", "No detenerse"},
		CorrectAnswer: 0,
		Explanation:   "La unidad no debe moverse hasta que el pasajero esté seguro; es parte del servicio prioritario.",
		Category:      CategoryPublico,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "pub-006",
		Text:          "El carril confinado para transporte público:",
		Options:       []string{"Puede usarse para rebasar", "Es exclusivo de las unidades autorizadas", "Es libre en fin de semana", "Es para taxis"},
		CorrectAnswer: 1,
		Explanation:   "Solo las unidades autorizadas circulan por el confinado; invadirlo es infracción para otros vehículos.",
		Category:      CategoryPublico,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "pub-007",
		Text:          "Antes de iniciar el servicio, el operador debe:",
		Options:       []string{"Revisar frenos, luces y llantas de la unidad", "Solo cargar combustible", "Limpiar los cristales", "Reportarse por radio"},
		CorrectAnswer: 0,
		Explanation:   "La inspección previa de sistemas de seguridad es obligatoria en vehículos de servicio público.",
		Category:      CategoryPublico,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "pub-008",
		Text:          "Si un pasajero viaja de pie, el operador debe:",
		Options:       []string{"Conducir con aceleraciones y frenados suaves", "Pedirle sentarse", "Ignorarlo", "Aumentar la velocidad"},
		CorrectAnswer: 0,
		Explanation:   "Los movimientos bruscos derriban a los pasajeros de pie; la conducción debe ser progresiva.",
		Category:      CategoryPublico,
		Difficulty:    DifficultyAvanzado,
	},
	{
		ID:            "car-001",
		Text:          "La carga de un camión debe:",
		Options:       []string{"Sobresalir libremente", "Ir sujeta, cubierta y sin exceder dimensiones autorizadas", "Acomodarse en ruta", "Solo pesarse en báscula"},
		CorrectAnswer: 1,
		Explanation:   "La carga mal sujeta o excedida es causa de volcaduras y está prohibida por la norma de pesos y dimensiones.",
		Category:      CategoryCarga,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "car-002",
		Text:          "En pendientes prolongadas de descenso, un vehículo pesado debe:",
		Options:       []string{"Bajar en neutral", "Usar freno de motor y velocidades bajas", "Frenar continuo con el pedal", "Apagar el motor"},
		CorrectAnswer: 1,
		Explanation:   "El uso continuo del freno de servicio lo sobrecalienta y lo desvanece; el freno de motor evita ese riesgo.",
		Category:      CategoryCarga,
		Difficulty:    DifficultyAvanzado,
	},
	{
		ID:            "car-003",
		Text:          "El transporte de materiales peligrosos requiere:",
		Options:       []string{"Solo lona de cubierta", "Autorización, señalización y hojas de emergencia", "Circular de noche", "Ir escoltado siempre"},
		CorrectAnswer: 1,
		Explanation:   "Los residuos y materiales peligrosos exigen permiso específico, rombos de identificación y documentación de emergencia.",
		Category:      CategoryCarga,
		Difficulty:    DifficultyAvanzado,
	},
	{
		ID:            "car-004",
		Text:          "Los puntos ciegos de un camión de carga son:",
		Options:       []string{"Iguales a los de un auto", "Mayores, especialmente en el costado derecho y atrás", "Inexistentes con espejos", "Solo al frente"},
		CorrectAnswer: 1,
		Explanation:   "Las dimensiones del camión amplían los puntos ciegos; el costado derecho y la parte trasera son críticos.",
		Category:      CategoryCarga,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "car-005",
		Text:          "Antes de un viaje largo, el operador de carga debe verificar:",
		Options:       []string{"Solo el combustible", "Frenos, llantas, luces y sujeción de la carga", "El estéreo", "La pintura de la caja"},
		CorrectAnswer: 1,
		Explanation:   "La inspección previa completa es obligatoria; una falla de frenos o amarre en ruta es catastrófica.",
		Category:      CategoryCarga,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "car-006",
		Text:          "La distancia de seguimiento de un camión cargado debe ser:",
		Options:       []string{"Igual a la de un auto", "Mayor, por la distancia de frenado más larga", "Menor para no perder el convoy", "No aplica"},
		CorrectAnswer: 1,
		Explanation:   "A mayor masa, mayor distancia de frenado; el seguimiento debe ampliarse en proporción.",
		Category:      CategoryCarga,
		Difficulty:    DifficultyMedio,
	},
	{
		ID:            "car-007",
		Text:          "En vientos laterales fuertes, una caja seca vacía:",
		Options:       []string{"Es más estable", "Tiene mayor riesgo de volcadura", "No se afecta", "Frena mejor"},
		CorrectAnswer: 1,
		Explanation:   "Sin peso de carga, la superficie lateral de la caja actúa como vela y facilita la volcadura.",
		Category:      CategoryCarga,
		Difficulty:    DifficultyAvanzado,
	},
	{
		ID:            "car-008",
		Text:          "Los horarios restringidos para vehículos de carga en zonas urbanas buscan:",
		Options:       []string{"Reducir congestión y riesgo en horas pico", "Cobrar más peaje", "Favorecer al transporte público", "No existen"},
		CorrectAnswer: 0,
		Explanation:   "Las restricciones horarias de carga reducen la convivencia de maniobras pesadas con el tráfico de hora pico.",
		Category:      CategoryCarga,
		Difficulty:    DifficultyMedio,
	},
}
