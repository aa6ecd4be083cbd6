package triage

// languagePack holds every static string the engine knows for one language.
// Crisis and mental-health bodies are stored without the disclaimer; the
// TemplateBook appends it when the catalog is compiled.
type languagePack struct {
	disclaimer    string
	greeting      string
	crisisPhrases []string
	crisis        string
	// keywords maps each subtopic to its trigger words. Words under
	// SubtopicDefault mark text as mental-health without naming a subtopic.
	keywords     map[Subtopic][]string
	mentalHealth map[Subtopic]string
	general      []string
	quickActions []string
}

// catalog is the single source of language data. Coverage is uneven on
// purpose: languages without an entry fall back to English.
var catalog = map[Language]*languagePack{
	English: {
		disclaimer: GenericDisclaimer,
		greeting:   "Namaste! I'm here to support you with mental health guidance tailored for Indian culture and context. How can I help you today?",
		crisisPhrases: []string{
			"suicide", "suicidal", "kill myself", "end my life", "end it all", "want to die",
			"self harm", "self-harm", "hurt myself", "no point living",
		},
		crisis: "🚨 EMERGENCY HELPLINES - Please reach out for immediate help:\n\n" +
			"iCall (24/7): 9152987821\n" +
			"AASRA (24/7): 91-9820466726\n" +
			"Vandrevala Foundation (24/7): 9999 666 555\n" +
			"Sneha (Chennai): 044-24640050\n" +
			"Sumaitri (Delhi): 011-23389090\n" +
			"National Emergency: 112\n\n" +
			"You are not alone. Please reach out to these professionals who can provide immediate help. Your life has value and meaning.",
		keywords: map[Subtopic][]string{
			SubtopicAnxiety:    {"anxious", "anxiety", "panic", "nervous", "worried"},
			SubtopicDepression: {"depressed", "depression", "sad", "hopeless", "worthless", "empty inside"},
			SubtopicFamily:     {"family", "parents", "mother", "father", "siblings"},
			SubtopicWork:       {"work", "job", "career", "boss", "office"},
			SubtopicStress:     {"stress", "exam", "pressure", "overwhelmed", "deadline", "study", "studies"},
			SubtopicSleep:      {"sleep", "insomnia", "tired", "nightmare"},
			SubtopicLoneliness: {"lonely", "alone", "isolated", "no friends", "someone to talk", "talk to someone"},
			SubtopicDefault: {
				"scared", "angry", "frustrated", "relationship", "cope", "coping",
				"therapy", "counseling", "counselling", "mental health",
			},
		},
		mentalHealth: map[Subtopic]string{
			SubtopicAnxiety: "Anxiety is common, especially with societal pressures in India. Try these steps:\n" +
				"1. Practice deep breathing (Pranayama)\n" +
				"2. Talk to trusted family members or friends\n" +
				"3. Consider meditation or yoga\n" +
				"4. Maintain regular sleep schedule\n" +
				"5. Limit social media if it increases comparison pressure",
			SubtopicDepression: "Depression affects many Indians but is often misunderstood. Key points:\n" +
				"1. It's a medical condition, not a personal weakness\n" +
				"2. Seek support from mental health professionals\n" +
				"3. Maintain social connections despite cultural stigma\n" +
				"4. Practice gratitude (कृतज्ञता)\n" +
				"5. Regular exercise and sunlight exposure",
			SubtopicFamily: "Family dynamics in India can be complex. Remember:\n" +
				"1. Set healthy boundaries while respecting relationships\n" +
				"2. Communicate your feelings clearly but respectfully\n" +
				"3. Seek family counseling if needed\n" +
				"4. Your mental health is important too\n" +
				"5. Consider talking to elders or relatives you trust",
			SubtopicWork: "Work stress is common in competitive Indian job market:\n" +
				"1. Set realistic goals and expectations\n" +
				"2. Take regular breaks during work\n" +
				"3. Discuss workload with supervisors when possible\n" +
				"4. Practice work-life separation\n" +
				"5. Consider career counseling if feeling overwhelmed",
			SubtopicStress: "Academic stress is very common and you're not alone in feeling this way. Here are some strategies:\n\n" +
				"• Break large tasks into smaller, manageable chunks\n" +
				"• Use the Pomodoro technique (25 min study, 5 min break)\n" +
				"• Prioritize self-care and adequate sleep\n" +
				"• Consider talking to your academic advisor\n\n" +
				"What specific aspects of your studies are causing the most stress?",
			SubtopicSleep: "Sleep difficulties can significantly impact mental health. Here are some sleep hygiene tips:\n\n" +
				"• Maintain a consistent sleep schedule\n" +
				"• Limit screen time 1 hour before bed\n" +
				"• Create a calming bedtime routine\n" +
				"• Keep your bedroom cool and dark\n" +
				"• Avoid caffeine late in the day\n\n" +
				"Have you noticed any patterns in what might be disrupting your sleep?",
			SubtopicLoneliness: "I'm here to listen and support you. Sometimes just talking through our feelings can be incredibly helpful. Your campus likely has:\n\n" +
				"• Counseling services (usually free for students)\n" +
				"• Peer support groups\n" +
				"• Crisis hotlines available 24/7\n" +
				"• Online support communities\n\n" +
				"What's been on your mind lately that you'd like to share?",
			SubtopicDefault: "I understand you're going through a difficult time. Here's some general guidance:\n" +
				"1. Acknowledge your feelings - they are valid\n" +
				"2. Reach out to trusted friends or family\n" +
				"3. Consider professional counseling\n" +
				"4. Practice self-care activities you enjoy\n" +
				"5. Remember that seeking help shows strength, not weakness",
		},
		general: []string{
			"That's interesting! I'm here to chat about anything, including mental health support. How are you feeling today?",
			"I appreciate you sharing that with me. Is there anything specific you'd like to talk about or any support you need?",
			"Thank you for that. I'm designed to provide mental health support with understanding of Indian culture. What's on your mind?",
			"I understand. Feel free to share anything that's bothering you or just chat casually. I'm here to help!",
			"Thanks for sharing! While I'm designed for mental health support, I enjoy chatting about various topics. Is there anything on your mind?",
		},
		quickActions: []string{
			"I'm feeling anxious",
			"I'm stressed about exams",
			"I need someone to talk to",
			"I'm having trouble sleeping",
			"I feel overwhelmed",
			"I need coping strategies",
			"Family stress",
			"Work pressure",
			"Feeling sad",
		},
	},
	Hindi: {
		disclaimer: "⚠️ अस्वीकरण: यह AI-जनित मार्गदर्शन है और पेशेवर चिकित्सा सलाह का विकल्प नहीं है। उचित उपचार के लिए कृपया किसी प्रमाणित मानसिक स्वास्थ्य पेशेवर या डॉक्टर से सलाह लें।",
		greeting:   "नमस्ते! मैं भारतीय संस्कृति और संदर्भ के अनुकूल मानसिक स्वास्थ्य मार्गदर्शन के साथ आपका समर्थन करने के लिए यहाँ हूँ। आज मैं आपकी कैसे मदद कर सकता हूँ?",
		crisisPhrases: []string{
			"आत्महत्या", "खुद को मारना", "जीवन समाप्त", "मरना चाहता", "मरना चाहती",
			"जीना नहीं", "खुद को नुकसान", "मरने का मन",
		},
		crisis: "🚨 आपातकालीन हेल्पलाइन - तुरंत सहायता के लिए संपर्क करें:\n\n" +
			"iCall (24/7): 9152987821\n" +
			"AASRA (24/7): 91-9820466726\n" +
			"Vandrevala Foundation (24/7): 9999 666 555\n" +
			"स्नेहा (चेन्नई): 044-24640050\n" +
			"सुमैत्री (दिल्ली): 011-23389090\n" +
			"राष्ट्रीय आपातकाल: 112\n\n" +
			"आप अकेले नहीं हैं। कृपया इन पेशेवरों से संपर्क करें जो तुरंत मदद कर सकते हैं। आपकी ज़िंदगी मूल्यवान और सार्थक है।",
		keywords: map[Subtopic][]string{
			SubtopicAnxiety:    {"चिंता", "चिंतित", "घबराहट", "बेचैनी"},
			SubtopicDepression: {"अवसाद", "उदास", "उदासी", "दुखी", "निराश"},
			SubtopicFamily:     {"परिवार", "पारिवारिक", "माता-पिता", "घरवाले"},
			SubtopicWork:       {"काम", "नौकरी", "करियर", "दफ्तर"},
			SubtopicStress:     {"तनाव", "दबाव", "परीक्षा", "पढ़ाई"},
			SubtopicSleep:      {"नींद", "थकान", "थका"},
			SubtopicLoneliness: {"अकेला", "अकेली", "अकेलापन", "किसी से बात"},
			SubtopicDefault:    {"डर", "डरा", "गुस्सा", "परेशान", "रिश्ता", "मानसिक स्वास्थ्य"},
		},
		mentalHealth: map[Subtopic]string{
			SubtopicAnxiety: "चिंता आम है, विशेषकर भारत में सामाजिक दबाव के साथ। ये कदम आज़माएं:\n" +
				"1. गहरी सांस लेने का अभ्यास करें (प्राणायाम)\n" +
				"2. विश्वसनीय परिवार या दोस्तों से बात करें\n" +
				"3. ध्यान या योग पर विचार करें\n" +
				"4. नियमित नींद का समय बनाए रखें\n" +
				"5. सामाजिक मीडिया सीमित करें यदि यह तुलना का दबाव बढ़ाता है",
			SubtopicDepression: "अवसाद कई भारतीयों को प्रभावित करता है लेकिन अक्सर गलत समझा जाता है। मुख्य बिंदु:\n" +
				"1. यह एक चिकित्सा स्थिति है, व्यक्तिगत कमज़ोरी नहीं\n" +
				"2. मानसिक स्वास्थ्य पेशेवरों से सहायता लें\n" +
				"3. सांस्कृतिक कलंक के बावजूद सामाजिक संपर्क बनाए रखें\n" +
				"4. कृतज्ञता का अभ्यास करें\n" +
				"5. नियमित व्यायाम और धूप में रहें",
			SubtopicFamily: "भारत में पारिवारिक गतिशीलता जटिल हो सकती है। याद रखें:\n" +
				"1. रिश्तों का सम्मान करते हुए स्वस्थ सीमाएं निर्धारित करें\n" +
				"2. अपनी भावनाओं को स्पष्ट लेकिन सम्मानजनक तरीके से संप्रेषित करें\n" +
				"3. आवश्यक होने पर पारिवारिक परामर्श लें\n" +
				"4. आपका मानसिक स्वास्थ्य भी महत्वपूर्ण है\n" +
				"5. विश्वसनीय बुजुर्गों या रिश्तेदारों से बात करने पर विचार करें",
			SubtopicWork: "प्रतिस्पर्धी भारतीय नौकरी बाजार में कार्य तनाव आम है:\n" +
				"1. यथार्थवादी लक्ष्य और अपेक्षाएं निर्धारित करें\n" +
				"2. काम के दौरान नियमित ब्रेक लें\n" +
				"3. संभव होने पर पर्यवेक्षकों के साथ कार्यभार पर चर्चा करें\n" +
				"4. कार्य-जीवन अलगाव का अभ्यास करें\n" +
				"5. अभिभूत महसूस करने पर करियर परामर्श पर विचार करें",
			SubtopicStress: "पढ़ाई और परीक्षा का तनाव बहुत आम है, और आप इसमें अकेले नहीं हैं। कुछ उपाय:\n\n" +
				"• बड़े कामों को छोटे, आसान हिस्सों में बांटें\n" +
				"• पोमोडोरो तकनीक अपनाएं (25 मिनट पढ़ाई, 5 मिनट आराम)\n" +
				"• पर्याप्त नींद और अपनी देखभाल को प्राथमिकता दें\n" +
				"• अपने शैक्षणिक सलाहकार से बात करने पर विचार करें\n\n" +
				"पढ़ाई का कौन सा हिस्सा आपको सबसे ज़्यादा तनाव दे रहा है?",
			SubtopicSleep: "नींद की समस्या मानसिक स्वास्थ्य पर गहरा असर डाल सकती है। कुछ सुझाव:\n\n" +
				"• रोज़ एक ही समय पर सोएं और उठें\n" +
				"• सोने से एक घंटा पहले स्क्रीन से दूर रहें\n" +
				"• सोने से पहले शांत दिनचर्या बनाएं\n" +
				"• कमरा ठंडा और अंधेरा रखें\n" +
				"• शाम के बाद चाय-कॉफ़ी से बचें\n\n" +
				"क्या आपने गौर किया है कि आपकी नींद किन कारणों से बिगड़ती है?",
			SubtopicLoneliness: "मैं यहाँ आपकी बात सुनने के लिए हूँ। कभी-कभी अपनी भावनाओं के बारे में बात करना ही बहुत मदद करता है। आपके कैंपस में शायद ये उपलब्ध हैं:\n\n" +
				"• काउंसलिंग सेवाएं (अक्सर छात्रों के लिए निःशुल्क)\n" +
				"• साथी सहायता समूह\n" +
				"• 24/7 संकट हेल्पलाइन\n" +
				"• ऑनलाइन सहायता समुदाय\n\n" +
				"हाल ही में आपके मन में क्या चल रहा है जो आप साझा करना चाहेंगे?",
			SubtopicDefault: "मैं समझता हूं कि आप कठिन समय से गुजर रहे हैं। यहां कुछ सामान्य मार्गदर्शन है:\n" +
				"1. अपनी भावनाओं को स्वीकार करें - वे वैध हैं\n" +
				"2. विश्वसनीय दोस्तों या परिवार से संपर्क करें\n" +
				"3. पेशेवर परामर्श पर विचार करें\n" +
				"4. आपको पसंद आने वाली स्व-देखभाल गतिविधियों का अभ्यास करें\n" +
				"5. याद रखें कि सहायता मांगना शक्ति दिखाता है, कमज़ोरी नहीं",
		},
		general: []string{
			"यह दिलचस्प है! मैं किसी भी चीज़ के बारे में बात करने के लिए यहाँ हूँ, मानसिक स्वास्थ्य सहायता सहित। आज आप कैसा महसूस कर रहे हैं?",
			"मैं आपके साथ यह साझा करने की सराहना करता हूँ। क्या कोई खास बात है जिसके बारे में आप बात करना चाहते हैं या कोई सहायता चाहिए?",
			"धन्यवाद। मैं भारतीय संस्कृति की समझ के साथ मानसिक स्वास्थ्य सहायता प्रदान करने के लिए डिज़ाइन किया गया हूँ। आपके मन में क्या है?",
			"मैं समझता हूँ। बेझिझक कुछ भी साझा करें जो आपको परेशान कर रहा है या बस आकस्मिक बातचीत करें। मैं मदद के लिए यहाँ हूँ!",
		},
		quickActions: []string{
			"मैं चिंतित महसूस कर रहा हूं",
			"पारिवारिक तनाव",
			"काम का दबाव",
			"उदास महसूस कर रहा हूं",
			"किसी से बात करने की जरूरत",
		},
	},
	Spanish: {
		disclaimer: "⚠️ Aviso: Esta es una orientación generada por IA y no sustituye el consejo médico profesional. Consulta a un profesional de salud mental certificado para recibir el tratamiento adecuado.",
		greeting:   "¡Hola! Soy MindWell AI. ¿Cómo te sientes hoy?",
		crisisPhrases: []string{
			"matarme", "suicidio", "quiero morir", "hacerme daño",
		},
		crisis: "Estoy muy preocupado/a por lo que has compartido. Por favor busca ayuda inmediata:\n\n" +
			"🚨 Emergencia: Llama al 911\n" +
			"📞 Línea de Crisis: Envía HOLA al 741741\n" +
			"☎️ Línea Nacional de Prevención del Suicidio: 988\n\n" +
			"Tu vida tiene valor.",
		keywords: map[Subtopic][]string{
			SubtopicAnxiety:    {"ansiedad", "ansioso", "ansiosa", "nervioso", "nerviosa", "pánico"},
			SubtopicDepression: {"deprimido", "deprimida", "depresión", "triste"},
			SubtopicFamily:     {"familia", "padres"},
			SubtopicWork:       {"trabajo"},
			SubtopicStress:     {"estrés", "estresado", "estresada", "exámenes", "presión"},
			SubtopicSleep:      {"dormir", "insomnio", "cansado", "cansada"},
			SubtopicLoneliness: {"soledad", "me siento solo", "me siento sola"},
			SubtopicDefault:    {"miedo", "enojado", "salud mental"},
		},
		mentalHealth: map[Subtopic]string{
			SubtopicAnxiety: "Entiendo que te sientes ansioso/a. Prueba la técnica 5-4-3-2-1: Nombra 5 cosas que ves, 4 que puedes tocar, 3 que escuchas, 2 que hueles, 1 que saboreas. ¿Qué está causando tu ansiedad?",
			SubtopicDefault: "Gracias por compartir conmigo. Tus sentimientos son válidos y es importante que busques apoyo. Estoy aquí para escucharte. ¿Te gustaría explorar algunas estrategias de afrontamiento?",
		},
		general: []string{
			"¡Qué interesante! Estoy aquí tanto para apoyo en salud mental como para conversación general. ¿Cómo te sientes hoy?",
			"¡Gracias por compartir! Aunque estoy diseñado para apoyo en salud mental, disfruto charlando sobre varios temas. ¿Hay algo en tu mente?",
		},
	},
	French: {
		disclaimer: "⚠️ Avertissement : Ceci est un accompagnement généré par IA et ne remplace pas un avis médical professionnel. Veuillez consulter un professionnel de santé mentale qualifié pour un traitement adapté.",
		greeting:   "Bonjour! Je suis MindWell AI. Comment vous sentez-vous aujourd'hui?",
		crisisPhrases: []string{
			"me tuer", "veux mourir", "me faire du mal", "me suicider",
		},
		crisis: "Je suis très préoccupé par ce que vous avez partagé. Veuillez chercher de l'aide immédiate:\n\n" +
			"🚨 Urgence: Appelez le 911\n" +
			"📞 Ligne de crise: Envoyez ACCUEIL au 741741\n\n" +
			"Votre vie a de la valeur.",
		keywords: map[Subtopic][]string{
			SubtopicAnxiety:    {"anxieux", "anxieuse", "anxiété", "angoisse", "panique"},
			SubtopicDepression: {"déprimé", "déprimée", "dépression", "triste"},
			SubtopicFamily:     {"famille"},
			SubtopicWork:       {"travail", "boulot"},
			SubtopicStress:     {"stressé", "stressée", "examen", "pression"},
			SubtopicSleep:      {"sommeil", "insomnie", "fatigué", "fatiguée"},
			SubtopicLoneliness: {"solitude", "je suis seul", "isolé", "isolée"},
			SubtopicDefault:    {"peur", "santé mentale"},
		},
		mentalHealth: map[Subtopic]string{
			SubtopicAnxiety: "Je comprends que vous vous sentez anxieux. Essayez la technique 5-4-3-2-1: Nommez 5 choses que vous voyez, 4 que vous touchez, 3 que vous entendez, 2 que vous sentez, 1 que vous goûtez.",
			SubtopicDefault: "Merci de partager avec moi. Vos sentiments sont valides et il est important que vous cherchiez du soutien. Je suis là pour vous écouter.",
		},
		general: []string{
			"C'est intéressant! Je suis là pour le soutien en santé mentale et la conversation générale. Comment vous sentez-vous aujourd'hui?",
			"Merci de partager! Bien que je sois conçu pour le soutien en santé mentale, j'aime discuter de divers sujets.",
		},
	},
	German: {
		disclaimer: "⚠️ Hinweis: Dies ist eine KI-generierte Orientierung und kein Ersatz für professionelle medizinische Beratung. Bitte wenden Sie sich für eine angemessene Behandlung an eine qualifizierte Fachkraft für psychische Gesundheit.",
		greeting:   "Hallo! Ich bin MindWell AI. Wie fühlen Sie sich heute?",
		crisisPhrases: []string{
			"mich umbringen", "selbstmord", "sterben will", "mir schaden",
		},
		crisis: "Ich bin sehr besorgt über das, was Sie geteilt haben. Bitte suchen Sie sofort Hilfe:\n\n" +
			"🚨 Notfall: Rufen Sie 911 an\n" +
			"📞 Krisenlinie: Senden Sie HEIMAT an 741741\n\n" +
			"Ihr Leben hat Wert.",
		keywords: map[Subtopic][]string{
			SubtopicAnxiety:    {"angst", "ängstlich", "panik", "nervös"},
			SubtopicDepression: {"deprimiert", "depression", "traurig"},
			SubtopicFamily:     {"familie", "eltern"},
			SubtopicWork:       {"arbeit"},
			SubtopicStress:     {"gestresst", "prüfung", "druck"},
			SubtopicSleep:      {"schlaf", "müde"},
			SubtopicLoneliness: {"einsam", "allein"},
			SubtopicDefault:    {"psychische gesundheit"},
		},
		mentalHealth: map[Subtopic]string{
			SubtopicAnxiety: "Ich verstehe, dass Sie sich ängstlich fühlen. Versuchen Sie die 5-4-3-2-1-Technik: Nennen Sie 5 Dinge, die Sie sehen, 4, die Sie berühren können, 3, die Sie hören, 2, die Sie riechen, 1, das Sie schmecken.",
			SubtopicDefault: "Danke, dass Sie das mit mir geteilt haben. Ihre Gefühle sind berechtigt und es ist wichtig, dass Sie Unterstützung suchen. Ich bin hier, um zuzuhören.",
		},
		general: []string{
			"Das ist interessant! Ich bin sowohl für psychische Gesundheit als auch für allgemeine Gespräche da. Wie fühlen Sie sich heute?",
			"Danke fürs Teilen! Obwohl ich für psychische Gesundheit entwickelt wurde, spreche ich gerne über verschiedene Themen.",
		},
	},
}
